package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"goodVibes/internal/app"
	"goodVibes/internal/auth"
	"goodVibes/internal/config"
	"goodVibes/internal/logger"

	flag "github.com/spf13/pflag"
)

func main() {
	configPath := flag.StringP("config", "c", "config.yml", "путь к файлу конфигурации")
	hash := flag.String("hash", "", "вывести bcrypt-хэш пароля для auth.users и выйти")
	flag.Parse()

	if *hash != "" {
		h, err := auth.HashPassword(*hash)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(h)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "конфигурация: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := app.New(cfg)
	if err := a.Init(ctx); err != nil {
		logger.Error("Main: ошибка инициализации", err)
		a.Shutdown()
		os.Exit(1)
	}

	if err := a.Run(ctx); err != nil {
		logger.Error("Main: сервер завершился с ошибкой", err)
		a.Shutdown()
		os.Exit(1)
	}
	logger.Info("Main: сервер остановлен")
	a.Shutdown()
}
