package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tOgg1/doula/internal/db"
	"github.com/tOgg1/doula/internal/logging"
	"github.com/tOgg1/doula/internal/models"
)

func newChatCmd(a *app) *cobra.Command {
	var history int
	cmd := &cobra.Command{
		Use:   "chat [message...]",
		Short: "Ask the assistant a question",
		Long:  "Send one message to the assistant and print the reply. With --history, print the stored conversation instead.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if history > 0 {
				return runChatHistory(cmd, a, history)
			}
			return runChat(cmd, a, strings.Join(args, " "))
		},
	}
	cmd.Flags().IntVar(&history, "history", 0, "print the last N stored messages")
	return cmd
}

func runChat(cmd *cobra.Command, a *app, text string) error {
	ctx := contextOf(cmd)
	text = strings.TrimSpace(text)
	if text == "" {
		return Exitf(ExitCodeUsage, "message is required")
	}

	store, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()
	profile, err := requireProfile(ctx, store)
	if err != nil {
		return err
	}

	client, err := a.client()
	if err != nil {
		return Exitf(ExitCodeUsage, "%v", err)
	}
	logger := logging.WithUser(a.logger, profile.UserID)
	ctx = logging.WithContext(ctx, logger)
	repo := db.NewChatRepository(store)
	outgoing := models.NewChatMessage(profile.UserID, models.SenderUser, text)
	if err := repo.Append(ctx, &outgoing); err != nil {
		logger.Warn().Err(err).Msg("persist chat message failed")
	}

	reply, err := client.Chat(ctx, models.ChatRequest{UserID: profile.UserID, Message: text})
	if err != nil {
		logger.Error().Err(err).Msg("chat request failed")
		return exitForAPI("chat", err)
	}
	incoming := models.NewChatMessage(profile.UserID, models.SenderAI, reply.Response)
	if err := repo.Append(ctx, &incoming); err != nil {
		logger.Warn().Err(err).Msg("persist chat message failed")
	}

	if a.jsonOutput {
		return writeJSON(stdout(cmd), incoming)
	}
	fmt.Fprintln(stdout(cmd), reply.Response)
	return nil
}

func runChatHistory(cmd *cobra.Command, a *app, limit int) error {
	ctx := contextOf(cmd)
	store, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()
	profile, err := requireProfile(ctx, store)
	if err != nil {
		return err
	}
	messages, err := db.NewChatRepository(store).ListByUser(ctx, profile.UserID, limit)
	if err != nil {
		return Exitf(ExitCodeFailure, "load chat history: %v", err)
	}
	if a.jsonOutput {
		return writeJSON(stdout(cmd), messages)
	}
	out := stdout(cmd)
	for _, msg := range messages {
		who := "You"
		if msg.Sender == models.SenderAI {
			who = models.AssistantName
		}
		fmt.Fprintf(out, "%s  %s: %s\n", msg.CreatedAt.Local().Format("2006-01-02 15:04"), who, msg.Text)
	}
	return nil
}
