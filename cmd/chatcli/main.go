package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/egor/agentdash/backend"
	"github.com/egor/agentdash/models"
	"github.com/egor/agentdash/session"
)

var (
	backendURL = flag.String("backend", "http://localhost:9000", "Адрес бэкенда чатов")
	timeout    = flag.Duration("timeout", 15*time.Second, "Тайм-аут запросов к бэкенду")
)

func main() {
	flag.Parse()

	client := backend.NewClient(*backendURL, *timeout)
	sess := session.New(client)

	boldGreen := color.New(color.FgGreen, color.Bold).SprintFunc()
	boldCyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	boldBlue := color.New(color.FgBlue, color.Bold).SprintFunc()
	gray := color.New(color.FgHiBlack).SprintFunc()

	fmt.Println(boldGreen("Дашборд переписки с сотрудниками"))
	fmt.Printf("Бэкенд: %s\n", boldCyan(*backendURL))
	fmt.Println("Команды: /roster, /search <запрос>, /open <имя>, /pin, exit")
	fmt.Println()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	if err := sess.LoadRoster(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Не удалось загрузить ростер: %v\n", err)
	}
	cancel()

	printRoster := func() {
		for _, emp := range sess.Store().FilteredRoster() {
			marker := " "
			if emp.Online {
				marker = boldGreen("*")
			}
			preview := emp.LastMessage
			if preview != "" {
				preview = gray(fmt.Sprintf("  %s (%s)", preview, session.FormatTimestamp(emp.LastTimestamp)))
			}
			fmt.Printf("%s %s%s\n", marker, emp.Name, preview)
		}
	}

	printTranscript := func() {
		for _, ins := range sess.Store().Pinned() {
			fmt.Printf("%s %s\n", boldBlue("[указание]"), ins.Text)
		}
		for _, msg := range sess.Store().VisibleTranscript() {
			who := string(msg.Sender)
			if msg.Sender == models.SenderAgent {
				who = boldGreen("Вы")
			}
			body := msg.Text
			if msg.Type == models.TypeDocument && msg.Document != "" {
				body = fmt.Sprintf("[документ: %s]", msg.Document)
			}
			fmt.Printf("%s %s: %s\n", gray(session.FormatTimestamp(msg.Timestamp)), who, body)
		}
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		active := sess.Store().Active()
		if active == "" {
			fmt.Print(boldGreen("> "))
		} else {
			fmt.Print(boldGreen(active + " > "))
		}
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.ToLower(trimmed) == "exit":
			return
		case trimmed == "/roster":
			sess.Store().SetSearch("")
			printRoster()
		case strings.HasPrefix(trimmed, "/search"):
			sess.Store().SetSearch(strings.TrimSpace(strings.TrimPrefix(trimmed, "/search")))
			printRoster()
		case strings.HasPrefix(trimmed, "/open"):
			name := strings.TrimSpace(strings.TrimPrefix(trimmed, "/open"))
			// ждём, пока история догрузится
			<-sess.Select(name)
			if name == "" {
				fmt.Println("Диалог закрыт")
				continue
			}
			printTranscript()
		case trimmed == "/pin":
			for _, ins := range sess.Store().Pinned() {
				fmt.Printf("%s %s\n", boldBlue("[указание]"), ins.Text)
			}
		default:
			sess.Store().SetComposing(line)
			if msg := sess.Send(line); msg != nil {
				fmt.Printf("%s %s: %s\n", gray(session.FormatTimestamp(msg.Timestamp)), boldGreen("Вы"), msg.Text)
			}
		}
	}
}
