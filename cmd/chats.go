package cmd

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/frahmantamala/marketplace-storefront/internal/auth"
	"github.com/frahmantamala/marketplace-storefront/internal/chat"
	"github.com/spf13/cobra"
)

var attachMIME string

// Chats live in memory, so each invocation starts from the fixtures.
var chatsCmd = &cobra.Command{
	Use:     "chats",
	Aliases: []string{"chat"},
	Short:   "Customer chats (demo data, not persisted)",
}

func chatsRun(run func(ctx context.Context, a *app, svc *chat.Service, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		if err := a.require(auth.CapManageChats); err != nil {
			return err
		}
		return run(ctx, a, a.store.Chats(), cmd, args)
	})
}

var chatsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List chats with their last message",
	Args:  cobra.NoArgs,
	RunE: chatsRun(func(_ context.Context, _ *app, svc *chat.Service, cmd *cobra.Command, _ []string) error {
		chats := svc.List()
		if asJSON() {
			return printJSON(cmd.OutOrStdout(), chats)
		}
		tw := table(cmd.OutOrStdout(), "ID", "WITH", "UNREAD", "LAST")
		for _, c := range chats {
			last := ""
			if m, ok := c.LastMessage(); ok {
				last = m.Timestamp + " " + m.Preview()
			}
			fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", c.ID, c.UserName, c.UnreadCount, last)
		}
		return tw.Flush()
	}),
}

var chatsShowCmd = &cobra.Command{
	Use:   "show <chat-id>",
	Short: "Show a conversation and mark it read",
	Args:  cobra.ExactArgs(1),
	RunE: chatsRun(func(_ context.Context, _ *app, svc *chat.Service, cmd *cobra.Command, args []string) error {
		if err := svc.MarkRead(args[0]); err != nil {
			return err
		}
		c, err := svc.Get(args[0])
		if err != nil {
			return err
		}
		return printChat(cmd, c)
	}),
}

var chatsSendCmd = &cobra.Command{
	Use:   "send <chat-id> <text>",
	Short: "Reply with a text message",
	Args:  cobra.ExactArgs(2),
	RunE: chatsRun(func(_ context.Context, _ *app, svc *chat.Service, cmd *cobra.Command, args []string) error {
		c, err := svc.SendText(args[0], args[1])
		if err != nil {
			return err
		}
		return printChat(cmd, c)
	}),
}

var chatsAttachCmd = &cobra.Command{
	Use:   "attach <chat-id> <file>",
	Short: "Reply with an image or file attachment",
	Args:  cobra.ExactArgs(2),
	RunE: chatsRun(func(_ context.Context, _ *app, svc *chat.Service, cmd *cobra.Command, args []string) error {
		path := args[1]
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("attachment: %w", err)
		}
		mimeType := attachMIME
		if mimeType == "" {
			mimeType = mime.TypeByExtension(filepath.Ext(path))
		}
		c, err := svc.SendAttachment(args[0], filepath.Base(path), mimeType, "file://"+path)
		if err != nil {
			return err
		}
		return printChat(cmd, c)
	}),
}

var chatsDeleteCmd = &cobra.Command{
	Use:   "delete <chat-id>",
	Short: "Delete a conversation",
	Args:  cobra.ExactArgs(1),
	RunE: chatsRun(func(_ context.Context, _ *app, svc *chat.Service, cmd *cobra.Command, args []string) error {
		svc.Delete(args[0])
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s, %d chats left\n", args[0], len(svc.List()))
		return nil
	}),
}

func printChat(cmd *cobra.Command, c chat.Chat) error {
	if asJSON() {
		return printJSON(cmd.OutOrStdout(), c)
	}
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s with %s\n", c.ID, c.UserName)
	for _, m := range c.Messages {
		fmt.Fprintf(w, "[%s] %-5s %s\n", m.Timestamp, m.Sender, m.Preview())
	}
	return nil
}

func init() {
	chatsAttachCmd.Flags().StringVar(&attachMIME, "mime", "", "MIME type; guessed from the extension when empty")

	chatsCmd.AddCommand(chatsListCmd, chatsShowCmd, chatsSendCmd, chatsAttachCmd, chatsDeleteCmd)
	rootCmd.AddCommand(chatsCmd)
}
