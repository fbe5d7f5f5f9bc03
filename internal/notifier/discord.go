package notifier

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/gdg-garage/pulse-events/internal/models"
	"go.uber.org/zap"
)

type DiscordNotifier struct {
	session   *discordgo.Session
	channelID string
	logger    *zap.Logger
}

func NewDiscordNotifier(session *discordgo.Session, channelID string, logger *zap.Logger) *DiscordNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DiscordNotifier{
		session:   session,
		channelID: channelID,
		logger:    logger,
	}
}

func (n *DiscordNotifier) NotifyEventPublished(editor models.User, event models.Event) error {
	return n.send(fmt.Sprintf("📣 **New Event**\n%s", eventSummary(editor, event)))
}

func (n *DiscordNotifier) NotifyEventUpdated(editor models.User, event models.Event) error {
	return n.send(fmt.Sprintf("✏️ **Event Updated**\n%s", eventSummary(editor, event)))
}

func (n *DiscordNotifier) NotifyEventDeleted(editor models.User, event models.Event) error {
	return n.send(fmt.Sprintf("🗑️ **Event Deleted**\n**Title:** %s\n**By:** %s (<@%s>)\n**Registrations dropped:** %d",
		event.Title, editor.Username, editor.DiscordID, event.CurrentParticipants))
}

func eventSummary(editor models.User, event models.Event) string {
	fee := "free"
	if event.AmountToPay > 0 {
		fee = fmt.Sprintf("₹%.2f", event.AmountToPay)
	}
	return fmt.Sprintf("**Title:** %s\n**When:** %s %s - %s\n**Where:** %s\n**Capacity:** %d/%d\n**Fee:** %s\n**By:** %s (<@%s>)",
		event.Title,
		event.EventDate.Format("2006-01-02"),
		event.TimeStart,
		event.TimeEnd,
		event.Location,
		event.CurrentParticipants,
		event.MaxParticipants,
		fee,
		editor.Username,
		editor.DiscordID,
	)
}

func (n *DiscordNotifier) send(message string) error {
	if n.session == nil {
		return fmt.Errorf("discord session is nil")
	}
	if n.channelID == "" {
		return fmt.Errorf("discord channel ID is empty")
	}

	if _, err := n.session.ChannelMessageSend(n.channelID, message); err != nil {
		n.logger.Warn("failed to send discord message", zap.String("channel_id", n.channelID), zap.Error(err))
		return err
	}
	return nil
}
