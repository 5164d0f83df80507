package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"crm_legal_go/config"
	"crm_legal_go/db"
	"crm_legal_go/logger"
	"crm_legal_go/services"
)

// Runs one backup, lists stored backups or restores one to a new file.
//
//	backup
//	backup -prune 30
//	backup -list
//	backup -restore backups/2025-01-08/<id>.db.enc -to restored.db
//	backup -genkey
func main() {
	list := flag.Bool("list", false, "list stored backups")
	restore := flag.String("restore", "", "backup key to restore")
	dest := flag.String("to", "", "destination file for -restore")
	genKey := flag.Bool("genkey", false, "print a new BACKUP_KEY and exit")
	prune := flag.Int("prune", 0, "after the backup, delete all but the newest N backups")
	flag.Parse()

	if *genKey {
		key, err := services.GenerateBackupKey()
		if err != nil {
			log.Fatalf("Failed to generate key: %v", err)
		}
		fmt.Println(key)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLog, err := logger.New(cfg.LogLevel, cfg.Environment)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLog.Sync()

	database, err := db.Open(cfg.DBPath, cfg.Environment)
	if err != nil {
		appLog.Fatal("failed to open database", "error", err)
	}
	defer db.Close(database)

	key, err := cfg.BackupKeyBytes()
	if err != nil {
		appLog.Fatal("invalid backup key", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	store := services.NewStore(database, appLog)
	backups := services.NewBackupService(store, services.NewStorage(ctx, cfg, appLog), key)

	switch {
	case *list:
		objects, err := backups.List(ctx)
		if err != nil {
			appLog.Fatal("failed to list backups", "error", err)
		}
		if len(objects) == 0 {
			fmt.Println("No backups stored.")
			return
		}
		for _, obj := range objects {
			fmt.Printf("%s\t%d\t%s\n", obj.Key, obj.Size, obj.LastModified.Format(time.RFC3339))
		}

	case *restore != "":
		if *dest == "" {
			fmt.Fprintln(os.Stderr, "-to is required with -restore")
			os.Exit(2)
		}
		if err := backups.Restore(ctx, *restore, *dest); err != nil {
			appLog.Fatal("restore failed", "error", err)
		}
		fmt.Printf("✓ Restored %s to %s\n", *restore, *dest)

	default:
		result, err := backups.Run(ctx)
		if err != nil {
			appLog.Fatal("backup failed", "error", err)
		}
		fmt.Printf("✓ Backup stored as %s (%d bytes, provider %s, encrypted %t)\n",
			result.Key, result.Size, result.Provider, result.Encrypted)

		if *prune > 0 {
			deleted, err := backups.Prune(ctx, *prune)
			if err != nil {
				appLog.Fatal("prune failed", "error", err)
			}
			fmt.Printf("✓ Pruned %d old backups\n", len(deleted))
		}
	}
}
