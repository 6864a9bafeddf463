// gvweek - терминальный просмотр недели планировщика.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"goodVibes/internal/client"
	"goodVibes/internal/handlers/dto"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	flag "github.com/spf13/pflag"
)

func main() {
	server := flag.StringP("server", "s", "http://localhost:8000", "адрес API")
	username := flag.StringP("user", "u", "admin", "имя пользователя")
	password := flag.StringP("password", "p", "", "пароль (по умолчанию из GV_PASSWORD)")
	calendar := flag.String("calendar", "", "id календаря для фильтра")
	once := flag.Bool("once", false, "вывести неделю и выйти")
	flag.Parse()

	if *password == "" {
		*password = os.Getenv("GV_PASSWORD")
	}

	var calendarID *uuid.UUID
	if *calendar != "" {
		id, err := uuid.Parse(*calendar)
		if err != nil {
			fail("неверный --calendar: %v", err)
		}
		calendarID = &id
	}

	c := client.New(*server)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	err := c.Login(ctx, *username, *password)
	cancel()
	if err != nil {
		fail("вход: %v", err)
	}

	fetch := func(ctx context.Context, center time.Time) (*dto.WeekResponse, error) {
		return c.Week(ctx, center, calendarID)
	}

	if *once {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		week, err := fetch(ctx, time.Now())
		if err != nil {
			fail("неделя: %v", err)
		}
		fmt.Println(renderWeek(week, 140, time.Now().Format(time.DateOnly)))
		return
	}

	if _, err := tea.NewProgram(newModel(fetch, time.Now), tea.WithAltScreen()).Run(); err != nil {
		fail("%v", err)
	}
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
