package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/peakfit/fitcli/internal/types"
)

func chatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat [room-id]",
		Short: "Interactive chat with your trainer or clients",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			rooms, err := app.chat.LoadRooms(ctx)
			if err != nil {
				return err
			}
			if len(rooms) == 0 {
				fmt.Println("no chat rooms yet; rooms appear once a booking is approved")
				return nil
			}

			printRooms(rooms)

			app.chat.Notify(func(roomId string, msg types.Message) {
				active, _ := app.chat.ActiveRoom()
				if roomId != active || msg.SenderIsLocal {
					return
				}
				fmt.Printf("\r[%s] %s\n> ", time.Now().Format("15:04:05"), msg.Text)
			})
			defer app.chat.Reset()
			defer func() {
				snap := app.stats.Snapshot()
				fmt.Printf("session: %d sent, %d received\n",
					snap["NumMessagesSent"], snap["NumMessagesReceived"])
			}()

			if len(args) == 1 {
				if err := selectRoom(cmd, args[0]); err != nil {
					return err
				}
			}

			fmt.Println("type a message, /room <id> to switch, /rooms to list, /quit to leave")
			fmt.Print("> ")

			scanner := bufio.NewScanner(os.Stdin)
			for scanner.Scan() {
				line := strings.TrimSpace(scanner.Text())

				switch {
				case line == "":
				case line == "/quit":
					return nil
				case line == "/rooms":
					printRooms(app.chat.Rooms())
				case strings.HasPrefix(line, "/room "):
					if err := selectRoom(cmd, strings.TrimSpace(strings.TrimPrefix(line, "/room "))); err != nil {
						fmt.Println("error:", err)
					}
				default:
					if err := app.chat.SendText(line); err != nil {
						fmt.Println("error:", err)
					}
				}
				fmt.Print("> ")
			}

			return scanner.Err()
		},
	}
}

func selectRoom(cmd *cobra.Command, roomId string) error {
	if err := app.chat.SelectRoom(cmd.Context(), roomId); err != nil {
		return err
	}

	for _, msg := range app.chat.Messages(roomId) {
		prefix := "them"
		if msg.SenderIsLocal {
			prefix = "me"
		}
		fmt.Printf("[%s] %s: %s\n", msg.Timestamp.Local().Format("15:04:05"), prefix, msg.Text)
	}

	fmt.Printf("joined room %s\n", roomId)
	return nil
}

func printRooms(rooms []types.Room) {
	fmt.Println("rooms:")
	for _, r := range rooms {
		fmt.Printf("  %s  %s\n", r.Id, r.CounterpartName)
	}
}
