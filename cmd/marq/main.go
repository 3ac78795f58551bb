package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/marqlabs/marq"
)

const (
	appName    = "marq"
	appVersion = "0.1.0"
)

// getXDGDataHome determines the XDG_DATA_HOME directory.
func getXDGDataHome() (string, error) {
	xdgDataHome := os.Getenv("XDG_DATA_HOME")
	if xdgDataHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("unable to determine user home directory: %v", err)
		}
		xdgDataHome = filepath.Join(homeDir, ".local", "share")
	}

	return xdgDataHome, nil
}

// getDataDirectory determines the data directory using a tiered approach:
// 1. the command-line flag (-data) takes the highest precedence.
// 2. Environment variable MARQ_DATA_DIR if a flag is not set.
// 3. XDG_DATA_HOME/marq or $HOME/.local/share/marq as fallback.
func getDataDirectory(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}

	if envDir := os.Getenv("MARQ_DATA_DIR"); envDir != "" {
		return envDir, nil
	}

	xdgDataHome, err := getXDGDataHome()
	if err != nil {
		return "", fmt.Errorf("unable to determine XDG_DATA_HOME: %v", err)
	}

	return filepath.Join(xdgDataHome, "marq"), nil
}

// getConfigFile determines the configuration file using a tiered approach:
// 1. The command-line flag (-config) takes the highest precedence.
// 2. Environment variable MARQ_CONFIG_FILE if a flag is not set.
// 3. <dataDir>/marq.yaml as fallback.
func getConfigFile(flagValue, dataDir string) string {
	if flagValue != "" {
		return flagValue
	}

	if file := os.Getenv("MARQ_CONFIG_FILE"); file != "" {
		return file
	}

	return filepath.Join(dataDir, "marq.yaml")
}

func main() {
	var port int
	var addr string
	var dataDirFlag string
	var configFlag string
	var leftDelim string
	var rightDelim string
	var keysDir string
	var identitiesFile string
	var recipientsFile string
	var generateKeys bool
	var showVersion bool

	flagSet := flag.NewFlagSet(appName, flag.ExitOnError)
	flagSet.StringVar(&dataDirFlag, "data", "", "Directory holding the document files.")
	flagSet.StringVar(&dataDirFlag, "d", "", "Directory holding the document files.")
	flagSet.StringVar(&configFlag, "config", "", "Path to the marq.yaml configuration file.")
	flagSet.StringVar(&configFlag, "c", "", "Path to the marq.yaml configuration file.")
	flagSet.StringVar(&leftDelim, "left", "", "Left passage delimiter (overrides the config file).")
	flagSet.StringVar(&rightDelim, "right", "", "Right passage delimiter (overrides the config file).")
	flagSet.StringVar(&keysDir, "keys-dir", "", "Directory for key operations (generation, etc.)")
	flagSet.StringVar(&keysDir, "k", "", "Directory for key operations (generation, etc.)")
	flagSet.StringVar(&identitiesFile, "identity", "", "Use the identity file at the specified path for decryption.")
	flagSet.StringVar(&identitiesFile, "i", "", "Use the identity file at the specified path for decryption.")
	flagSet.StringVar(&recipientsFile, "recipient", "", "Use the recipient file at the specified path for encryption.")
	flagSet.StringVar(&recipientsFile, "r", "", "Use the recipient file at the specified path for encryption.")
	flagSet.BoolVar(&generateKeys, "generate-keys", false, "Generate new key pair and save to keys-dir.")
	flagSet.BoolVar(&generateKeys, "g", false, "Generate new key pair and save to keys-dir.")

	flagSet.IntVar(&port, "port", 8080, "Port to run the server on.")
	flagSet.IntVar(&port, "p", 8080, "Port to run the server on.")
	flagSet.StringVar(&addr, "addr", "localhost", "Address to bind the server to.")
	flagSet.StringVar(&addr, "a", "localhost", "Address to bind the server to.")

	flagSet.BoolVar(&showVersion, "version", false, "Show application version.")
	flagSet.BoolVar(&showVersion, "v", false, "Show application version.")

	flagSet.Usage = func() {
		_, _ = fmt.Fprintf(flagSet.Output(), "MARQ - Marked-passage Review and Query\n\n")
		_, _ = fmt.Fprintf(flagSet.Output(), "Examples:\n")
		_, _ = fmt.Fprintf(flagSet.Output(), "  # Serve a document directory:\n")
		_, _ = fmt.Fprintf(flagSet.Output(), "  %s -data ~/notes\n\n", appName)
		_, _ = fmt.Fprintf(flagSet.Output(), "  # Use custom passage delimiters:\n")
		_, _ = fmt.Fprintf(flagSet.Output(), "  %s -left '[[' -right ']]'\n\n", appName)
		_, _ = fmt.Fprintf(flagSet.Output(), "  # Generate new encryption keys:\n")
		_, _ = fmt.Fprintf(flagSet.Output(), "  %s -generate-keys -keys-dir ~/.marq/keys\n\n", appName)
		_, _ = fmt.Fprintf(flagSet.Output(), "Options:\n")
		flagSet.PrintDefaults()
	}

	err := flagSet.Parse(os.Args[1:])
	if err != nil {
		log.Fatal(fmt.Errorf("error parsing flags: %v", err))
	}

	if showVersion {
		fmt.Printf("MARQ version %s\n", appVersion)
		os.Exit(0)
		return
	}

	// Generate new keys - outputs to timestamped key pair files in the keys directory.
	if generateKeys {
		publicKey, _, publicPath, privatePath, err := marq.GenerateNewEncryptionPair(keysDir)
		if err != nil {
			log.Fatal(fmt.Errorf("error generating new encryption identity: %v", err))
		}

		fmt.Printf("Generated new encryption identity:\n")
		fmt.Printf("  Public key: %s\n", publicKey)
		fmt.Printf("  Public key file: %s\n", publicPath)
		fmt.Printf("  Private key file: %s\n", privatePath)
		fmt.Printf("\nTo use these keys:\n")
		fmt.Printf("  %s -identity %s -recipient %s\n", appName, privatePath, publicKey)
		os.Exit(0)
		return
	}

	// Resolve the data directory.
	dataDir, err := getDataDirectory(dataDirFlag)
	if err != nil {
		log.Fatal(fmt.Errorf("error determining data directory: %v", err))
	}

	if err := SetupLogging(DefaultLogConfig(dataDir)); err != nil {
		log.Fatal(fmt.Errorf("error setting up logging: %v", err))
	}

	// Load the session configuration; delimiter flags win over the file.
	cfg, err := marq.LoadConfig(getConfigFile(configFlag, dataDir))
	if err != nil {
		log.Fatal(fmt.Errorf("error loading configuration: %v", err))
	}
	if leftDelim != "" {
		cfg.DelimiterLeft = leftDelim
	}
	if rightDelim != "" {
		cfg.DelimiterRight = rightDelim
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(fmt.Errorf("error validating configuration: %v", err))
	}

	// Set up the encryption config
	encryptionManager := marq.NewEncryptionManager()
	if identitiesFile != "" && recipientsFile != "" {
		if err := encryptionManager.LoadEncryptionKeys(identitiesFile, recipientsFile); err != nil {
			log.Printf("Error loading encryption keys: %v", err)
			log.Printf("Encryption disabled!")
		} else {
			log.Printf("Encryption enabled!")
		}
	}

	// Create a context for the server
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create the server and start it
	server, err := NewServer(ctx, dataDir, cfg, WithEncryptionManager(encryptionManager))
	if err != nil {
		log.Fatal(fmt.Errorf("error initializing server: %v", err))
	}

	err = server.Start(addr, port)
	if err != nil {
		log.Fatal(err)
	}
}
