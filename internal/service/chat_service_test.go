package service

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"fitlink-backend/internal/model"
)

type award struct {
	uid    string
	amount int
	reason string
}

type recordingXPService struct {
	awards  []award
	unlocks []string
}

func (s *recordingXPService) AddXP(ctx context.Context, uid string, amount int, reason string) (*model.XPLedger, error) {
	s.awards = append(s.awards, award{uid: uid, amount: amount, reason: reason})
	return &model.XPLedger{UID: uid, TotalXP: amount, CurrentLevel: 1}, nil
}

func (s *recordingXPService) UnlockAchievement(ctx context.Context, uid, achievementID string) error {
	s.unlocks = append(s.unlocks, achievementID)
	return nil
}

func (s *recordingXPService) Ledger(ctx context.Context, uid string) (*model.XPLedger, error) {
	return &model.XPLedger{UID: uid, CurrentLevel: 1}, nil
}

func (s *recordingXPService) Achievements(ctx context.Context, uid string) ([]AchievementStatus, error) {
	return nil, nil
}

type fakeConversationRepo struct {
	convs    map[string]*model.Conversation
	messages []model.Message
	nextID   uint64
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{convs: make(map[string]*model.Conversation)}
}

func pairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "/" + b
}

func (r *fakeConversationRepo) FindOrCreate(ctx context.Context, uidA, uidB string) (*model.Conversation, bool, error) {
	key := pairKey(uidA, uidB)
	if cv, ok := r.convs[key]; ok {
		return cv, false, nil
	}
	if uidB < uidA {
		uidA, uidB = uidB, uidA
	}
	r.nextID++
	cv := &model.Conversation{ID: r.nextID, UserAUID: uidA, UserBUID: uidB}
	r.convs[key] = cv
	return cv, true, nil
}

func (r *fakeConversationRepo) FindByID(ctx context.Context, id uint64) (*model.Conversation, error) {
	for _, cv := range r.convs {
		if cv.ID == id {
			return cv, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeConversationRepo) ListForUser(ctx context.Context, uid string) ([]model.Conversation, error) {
	var out []model.Conversation
	for _, cv := range r.convs {
		if cv.UserAUID == uid || cv.UserBUID == uid {
			out = append(out, *cv)
		}
	}
	return out, nil
}

func (r *fakeConversationRepo) CreateMessage(ctx context.Context, m *model.Message) error {
	r.messages = append(r.messages, *m)
	return nil
}

func (r *fakeConversationRepo) ListMessages(ctx context.Context, conversationID uint64, limit int) ([]model.Message, error) {
	var out []model.Message
	for _, m := range r.messages {
		if m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeConversationRepo) CountMessagesBySender(ctx context.Context, uid string) (int64, error) {
	var n int64
	for _, m := range r.messages {
		if m.SenderUID == uid {
			n++
		}
	}
	return n, nil
}

func (r *fakeConversationRepo) SetDB(db *gorm.DB) {}

func TestStartConversationAwardsOnceOnCreation(t *testing.T) {
	repo := newFakeConversationRepo()
	xpSvc := &recordingXPService{}
	svc := NewChatService(repo, xpSvc)
	ctx := context.Background()

	cv, err := svc.StartConversation(ctx, "alice", "bob")
	if err != nil {
		t.Fatalf("StartConversation: %v", err)
	}
	if cv == nil {
		t.Fatal("StartConversation returned nil conversation")
	}
	if len(xpSvc.awards) != 1 {
		t.Fatalf("awards after first start = %d, want 1", len(xpSvc.awards))
	}
	got := xpSvc.awards[0]
	if got.uid != "alice" || got.amount != 50 || got.reason != "Chat iniciado" {
		t.Fatalf("award = %+v, want {alice 50 Chat iniciado}", got)
	}
	if len(xpSvc.unlocks) != 1 || xpSvc.unlocks[0] != "first_chat" {
		t.Fatalf("unlocks = %v, want [first_chat]", xpSvc.unlocks)
	}

	// reopening the same pair, from either side, awards nothing more
	if _, err := svc.StartConversation(ctx, "alice", "bob"); err != nil {
		t.Fatalf("second StartConversation: %v", err)
	}
	if _, err := svc.StartConversation(ctx, "bob", "alice"); err != nil {
		t.Fatalf("reversed StartConversation: %v", err)
	}
	if len(xpSvc.awards) != 1 {
		t.Fatalf("awards after reopen = %d, want 1", len(xpSvc.awards))
	}
}

func TestSendMessageAwardsByKind(t *testing.T) {
	repo := newFakeConversationRepo()
	xpSvc := &recordingXPService{}
	svc := NewChatService(repo, xpSvc)
	ctx := context.Background()

	cv, err := svc.StartConversation(ctx, "alice", "bob")
	if err != nil {
		t.Fatalf("StartConversation: %v", err)
	}
	xpSvc.awards = nil

	if _, err := svc.SendMessage(ctx, cv.ID, "alice", "hola", nil); err != nil {
		t.Fatalf("SendMessage text: %v", err)
	}
	img := "https://example.com/a.jpg"
	if _, err := svc.SendMessage(ctx, cv.ID, "bob", "", &img); err != nil {
		t.Fatalf("SendMessage image: %v", err)
	}
	if len(xpSvc.awards) != 2 {
		t.Fatalf("awards = %d, want 2", len(xpSvc.awards))
	}
	if xpSvc.awards[0].amount != 50 || xpSvc.awards[0].reason != "Mensaje enviado" {
		t.Fatalf("text award = %+v", xpSvc.awards[0])
	}
	if xpSvc.awards[1].amount != 75 || xpSvc.awards[1].reason != "Imagen enviada" {
		t.Fatalf("image award = %+v", xpSvc.awards[1])
	}
}

func TestSendMessageRejectsNonParticipant(t *testing.T) {
	repo := newFakeConversationRepo()
	xpSvc := &recordingXPService{}
	svc := NewChatService(repo, xpSvc)
	ctx := context.Background()

	cv, err := svc.StartConversation(ctx, "alice", "bob")
	if err != nil {
		t.Fatalf("StartConversation: %v", err)
	}
	xpSvc.awards = nil

	if _, err := svc.SendMessage(ctx, cv.ID, "mallory", "hola", nil); err != ErrForbidden {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
	if len(xpSvc.awards) != 0 {
		t.Fatalf("awards = %d, want 0", len(xpSvc.awards))
	}
}
