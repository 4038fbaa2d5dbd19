package storage_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ananth-NQI/portfolio-backend/internal/models"
	"github.com/Ananth-NQI/portfolio-backend/internal/storage"
	"github.com/Ananth-NQI/portfolio-backend/internal/testutil"
)

func inbound(email, content string) *models.Message {
	return &models.Message{
		SenderName:    "Bob",
		SenderEmail:   email,
		Content:       content,
		ContactMethod: models.ContactMethodEmail,
	}
}

func TestAppendInboundMessageGroupsBySender(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)

	conv1, created, err := store.AppendInboundMessage(ctx, "Hi", inbound("bob@x.com", "one"))
	require.NoError(t, err)
	assert.True(t, created)
	assert.True(t, conv1.IsActive)

	conv2, created, err := store.AppendInboundMessage(ctx, "Other subject", inbound("bob@x.com", "two"))
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, conv1.ID, conv2.ID)

	_, created, err = store.AppendInboundMessage(ctx, "Hello", inbound("alice@x.com", "three"))
	require.NoError(t, err)
	assert.True(t, created)

	got, err := store.GetConversation(ctx, conv1.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hi", got.Subject)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "one", got.Messages[0].Content)
	assert.Equal(t, "two", got.Messages[1].Content)
}

func TestAppendInboundMessageConcurrentFirstMessages(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)

	const senders = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
		ids     = map[uint]bool{}
	)
	for i := 0; i < senders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			conv, isNew, err := store.AppendInboundMessage(ctx, "Hi", inbound("carol@x.com", fmt.Sprintf("msg %d", i)))
			assert.NoError(t, err)
			if err != nil {
				return
			}
			mu.Lock()
			defer mu.Unlock()
			ids[conv.ID] = true
			if isNew {
				created++
			}
		}(i)
	}
	wg.Wait()

	assert.Len(t, ids, 1)
	assert.Equal(t, 1, created)

	var count int64
	require.NoError(t, store.DB().Model(&models.Conversation{}).Where("sender_email = ?", "carol@x.com").Count(&count).Error)
	assert.EqualValues(t, 1, count)

	dup := &models.Conversation{SenderEmail: "carol@x.com", Subject: "dup", IsActive: true}
	assert.Error(t, store.DB().Create(dup).Error, "sender email is unique")
}

func TestAppendInboundMessageStoresAttachments(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)

	msg := inbound("bob@x.com", "see attached")
	msg.Attachments = []models.Attachment{{
		FileName: "cv.pdf",
		FileURL:  "/uploads/message-1-abc.pdf",
		FileType: "application/pdf",
		FileSize: 1024,
	}}
	conv, _, err := store.AppendInboundMessage(ctx, "CV", msg)
	require.NoError(t, err)

	got, err := store.GetConversation(ctx, conv.ID)
	require.NoError(t, err)
	require.Len(t, got.Messages, 1)
	require.Len(t, got.Messages[0].Attachments, 1)
	assert.Equal(t, "cv.pdf", got.Messages[0].Attachments[0].FileName)
}

func TestListConversationsOrdering(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)

	first, _, err := store.AppendInboundMessage(ctx, "A", inbound("a@x.com", "a1"))
	require.NoError(t, err)
	second, _, err := store.AppendInboundMessage(ctx, "B", inbound("b@x.com", "b1"))
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	_, _, err = store.AppendInboundMessage(ctx, "A", inbound("a@x.com", "a2"))
	require.NoError(t, err)

	list, err := store.ListConversations(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)

	require.Len(t, list[0].Messages, 2)
	assert.Equal(t, "a2", list[0].Messages[0].Content)
}

func TestMarkConversationRead(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)

	conv, _, err := store.AppendInboundMessage(ctx, "Hi", inbound("bob@x.com", "one"))
	require.NoError(t, err)
	_, _, err = store.AppendInboundMessage(ctx, "Hi", inbound("bob@x.com", "two"))
	require.NoError(t, err)

	marked, err := store.MarkConversationRead(ctx, conv.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, marked)

	marked, err = store.MarkConversationRead(ctx, conv.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, marked)

	_, err = store.MarkConversationRead(ctx, 999)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestAppendReplyFlagsInboundMessages(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)

	conv, _, err := store.AppendInboundMessage(ctx, "Hi", inbound("bob@x.com", "one"))
	require.NoError(t, err)
	_, _, err = store.AppendInboundMessage(ctx, "Hi", inbound("bob@x.com", "two"))
	require.NoError(t, err)

	reply := &models.Message{
		SenderName:    "Admin",
		SenderEmail:   "admin@portfolio.local",
		Content:       "thanks",
		ContactMethod: models.ContactMethodAdminReply,
		IsRead:        true,
		HasReply:      true,
	}
	marked, err := store.AppendReply(ctx, conv.ID, reply)
	require.NoError(t, err)
	assert.EqualValues(t, 2, marked)
	assert.NotZero(t, reply.ID)

	got, err := store.GetConversation(ctx, conv.ID)
	require.NoError(t, err)
	require.Len(t, got.Messages, 3)
	for _, m := range got.Messages {
		assert.True(t, m.HasReply, "message %d", m.ID)
	}
	assert.True(t, got.Messages[2].IsAdminReply())

	stats, err := store.MessageStats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.Conversations)
	assert.EqualValues(t, 2, stats.Unread)
	assert.EqualValues(t, 0, stats.AwaitingReply)

	_, err = store.AppendReply(ctx, 999, &models.Message{Content: "x", ContactMethod: models.ContactMethodAdminReply})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDeleteConversationCascades(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)

	msg := inbound("bob@x.com", "one")
	msg.Attachments = []models.Attachment{{FileName: "a.png", FileURL: "/uploads/a.png", FileType: "image/png", FileSize: 10}}
	conv, _, err := store.AppendInboundMessage(ctx, "Hi", msg)
	require.NoError(t, err)
	other, _, err := store.AppendInboundMessage(ctx, "Hi", inbound("alice@x.com", "keep"))
	require.NoError(t, err)

	require.NoError(t, store.DeleteConversation(ctx, conv.ID))
	assert.ErrorIs(t, store.DeleteConversation(ctx, conv.ID), storage.ErrNotFound)

	var messages, attachments int64
	db := store.DB()
	require.NoError(t, db.Model(&models.Message{}).Where("conversation_id = ?", conv.ID).Count(&messages).Error)
	require.NoError(t, db.Model(&models.Attachment{}).Count(&attachments).Error)
	assert.Zero(t, messages)
	assert.Zero(t, attachments)

	_, err = store.GetConversation(ctx, other.ID)
	assert.NoError(t, err)
}

func TestDeleteConversationsBefore(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)

	old, _, err := store.AppendInboundMessage(ctx, "Old", inbound("old@x.com", "old"))
	require.NoError(t, err)
	fresh, _, err := store.AppendInboundMessage(ctx, "New", inbound("new@x.com", "new"))
	require.NoError(t, err)

	require.NoError(t, store.DB().Model(&models.Conversation{}).
		Where("id = ?", old.ID).
		UpdateColumn("updated_at", time.Now().AddDate(0, 0, -40)).Error)

	deleted, err := store.DeleteConversationsBefore(ctx, time.Now().AddDate(0, 0, -30))
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	_, err = store.GetConversation(ctx, old.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = store.GetConversation(ctx, fresh.ID)
	assert.NoError(t, err)
}

func TestUpdateConversation(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)

	conv, _, err := store.AppendInboundMessage(ctx, "Hi", inbound("bob@x.com", "one"))
	require.NoError(t, err)

	require.NoError(t, store.UpdateConversation(ctx, conv.ID, map[string]interface{}{
		"subject":   "Renamed",
		"is_active": false,
	}))
	got, err := store.GetConversation(ctx, conv.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Subject)
	assert.False(t, got.IsActive)

	assert.ErrorIs(t, store.UpdateConversation(ctx, 999, map[string]interface{}{"subject": "x"}), storage.ErrNotFound)
}

func TestDeleteTemplateUnlinksConversations(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)

	tpl := &models.AutoReplyTemplate{Name: "Default", Subject: "Thanks", Message: "Hi {{name}}", IsActive: true}
	require.NoError(t, store.CreateTemplate(ctx, tpl))

	conv, _, err := store.AppendInboundMessage(ctx, "Hi", inbound("bob@x.com", "one"))
	require.NoError(t, err)
	require.NoError(t, store.UpdateConversation(ctx, conv.ID, map[string]interface{}{"auto_reply_template_id": tpl.ID}))

	got, err := store.GetConversation(ctx, conv.ID)
	require.NoError(t, err)
	require.NotNil(t, got.AutoReplyTemplate)
	assert.Equal(t, "Default", got.AutoReplyTemplate.Name)

	require.NoError(t, store.DeleteTemplate(ctx, tpl.ID))
	assert.ErrorIs(t, store.DeleteTemplate(ctx, tpl.ID), storage.ErrNotFound)

	got, err = store.GetConversation(ctx, conv.ID)
	require.NoError(t, err)
	assert.Nil(t, got.AutoReplyTemplateID)
	assert.Nil(t, got.AutoReplyTemplate)
}
