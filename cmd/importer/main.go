// Command importer 從命令列匯入成員 CSV，提交前在終端機確認。
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"uav-roster/internal/application/club"
	"uav-roster/internal/domain/member"
	"uav-roster/internal/infrastructure/config"
	"uav-roster/internal/infrastructure/persistence"
	"uav-roster/internal/pkg/logger"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to config file")
	file := flag.String("file", "", "CSV file to import (- for stdin)")
	yes := flag.Bool("yes", false, "skip the confirmation prompt")
	flag.Parse()

	if *file == "" {
		log.Fatal("-file is required")
	}
	if *file == "-" && !*yes {
		log.Fatal("reading CSV from stdin requires -yes")
	}
	cfg, err := config.LoadFromFile(*cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	appLogger := logger.NewDefault(cfg.Log.Level)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	backend, err := persistence.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("open storage: %v", err)
	}
	defer backend.Close()
	if err := backend.RequirePersistent(); err != nil {
		log.Fatalf("%v: set db.dsn or redis.addr", err)
	}

	in, closeIn, err := openInput(*file)
	if err != nil {
		log.Fatalf("open %s: %v", *file, err)
	}
	defer closeIn()

	loc := clubLocation(cfg.Club, appLogger)
	svc := club.NewService(backend.Repo, club.Options{Location: loc, Logger: appLogger})

	confirm := promptConfirm(os.Stdin, os.Stdout)
	if *yes {
		confirm = func(club.Plan) bool { return true }
	}
	res, err := svc.ImportCSV(ctx, in, confirm)
	switch {
	case errors.Is(err, member.ErrConfirmationRequired):
		fmt.Println("import cancelled")
		os.Exit(1)
	case err != nil:
		log.Fatalf("import failed: %v", err)
	}
	fmt.Printf("imported %d members into %s (roster now has %d)\n", res.Plan.Count, backend.Name, len(res.Data.Members))
}

// clubLocation 解析社團時區，失敗時記錄警告並改用 UTC。
func clubLocation(c config.ClubConfig, logger *slog.Logger) *time.Location {
	loc, err := c.Location()
	if err != nil {
		logger.Warn("invalid club timezone, using UTC", slog.String("error", err.Error()))
	}
	return loc
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

// promptConfirm 顯示計畫說明並讀取 y/N 回覆。
func promptConfirm(in io.Reader, out io.Writer) club.Confirm {
	reader := bufio.NewReader(in)
	return func(p club.Plan) bool {
		fmt.Fprintf(out, "%s [y/N] ", p.Description)
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		}
		return false
	}
}
