package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/healthsync-service/internal/domain"
)

// In-memory fakes standing in for the Postgres and Redis backed stores.

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*domain.User{}}
}

func (m *memUserRepo) Create(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *memUserRepo) Update(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user, ok := m.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memUserRepo) List(_ context.Context) ([]domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	users := make([]domain.User, 0, len(m.users))
	for _, user := range m.users {
		users = append(users, *user)
	}
	return users, nil
}

func (m *memUserRepo) SetRole(_ context.Context, id string, role domain.Role) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.Role = role
	return nil
}

func (m *memUserRepo) SetEmailVerified(_ context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.Email == email {
			user.EmailVerified = true
		}
	}
	return nil
}

func (m *memUserRepo) Count(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.users)), nil
}

func (m *memUserRepo) CountCreatedSince(context.Context, int) (int64, error) {
	return m.Count(context.Background())
}

type memRevocations struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func newMemRevocations() *memRevocations {
	return &memRevocations{revoked: map[string]time.Time{}}
}

func (m *memRevocations) Revoke(_ context.Context, jti, _ string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[jti] = time.Now().Add(ttl)
	return nil
}

func (m *memRevocations) IsRevoked(_ context.Context, jti string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	expiry, ok := m.revoked[jti]
	if !ok {
		return false, nil
	}
	if time.Now().After(expiry) {
		delete(m.revoked, jti)
		return false, nil
	}
	return true, nil
}

type memOTPRepo struct {
	mu      sync.Mutex
	records map[string]*domain.OTPRecord
}

func newMemOTPRepo() *memOTPRepo {
	return &memOTPRepo{records: map[string]*domain.OTPRecord{}}
}

func (m *memOTPRepo) Upsert(_ context.Context, record *domain.OTPRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *record
	m.records[record.Email] = &copied
	return nil
}

func (m *memOTPRepo) GetByEmail(_ context.Context, email string) (*domain.OTPRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if record, ok := m.records[email]; ok {
		copied := *record
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (m *memOTPRepo) Delete(_ context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, email)
	return nil
}

type memConversationRepo struct {
	mu            sync.Mutex
	conversations map[string]*domain.Conversation
	messages      map[string][]domain.ChatMessage
}

func newMemConversationRepo() *memConversationRepo {
	return &memConversationRepo{
		conversations: map[string]*domain.Conversation{},
		messages:      map[string][]domain.ChatMessage{},
	}
}

func (m *memConversationRepo) Create(_ context.Context, conversation *domain.Conversation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	conversation.ID = uuid.NewString()
	conversation.CreatedAt = time.Now()
	conversation.UpdatedAt = conversation.CreatedAt
	copied := *conversation
	m.conversations[conversation.ID] = &copied
	return nil
}

func (m *memConversationRepo) GetByID(_ context.Context, id string) (*domain.Conversation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if conversation, ok := m.conversations[id]; ok {
		copied := *conversation
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (m *memConversationRepo) ListByUser(_ context.Context, userID string) ([]domain.Conversation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var conversations []domain.Conversation
	for _, conversation := range m.conversations {
		if conversation.UserID == userID {
			conversations = append(conversations, *conversation)
		}
	}
	return conversations, nil
}

func (m *memConversationRepo) AddMessage(_ context.Context, message *domain.ChatMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	message.ID = uuid.NewString()
	message.CreatedAt = time.Now()
	m.messages[message.ConversationID] = append(m.messages[message.ConversationID], *message)
	return nil
}

func (m *memConversationRepo) ListMessages(_ context.Context, conversationID string) ([]domain.ChatMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.ChatMessage(nil), m.messages[conversationID]...), nil
}

func (m *memConversationRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.conversations, id)
	delete(m.messages, id)
	return nil
}

type memConsultationRepo struct {
	mu            sync.Mutex
	consultations map[string]*domain.Consultation
	messages      map[string][]domain.ConsultationMessage
}

func newMemConsultationRepo() *memConsultationRepo {
	return &memConsultationRepo{
		consultations: map[string]*domain.Consultation{},
		messages:      map[string][]domain.ConsultationMessage{},
	}
}

func (m *memConsultationRepo) Create(_ context.Context, consultation *domain.Consultation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	consultation.ID = uuid.NewString()
	consultation.CreatedAt = time.Now()
	consultation.UpdatedAt = consultation.CreatedAt
	copied := *consultation
	m.consultations[consultation.ID] = &copied
	return nil
}

func (m *memConsultationRepo) GetByID(_ context.Context, id string) (*domain.Consultation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if consultation, ok := m.consultations[id]; ok {
		copied := *consultation
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (m *memConsultationRepo) ListByUser(_ context.Context, userID string) ([]domain.Consultation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var consultations []domain.Consultation
	for _, consultation := range m.consultations {
		if consultation.UserID == userID {
			consultations = append(consultations, *consultation)
		}
	}
	return consultations, nil
}

func (m *memConsultationRepo) AddMessage(_ context.Context, message *domain.ConsultationMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	message.ID = uuid.NewString()
	message.CreatedAt = time.Now()
	m.messages[message.ConsultationID] = append(m.messages[message.ConsultationID], *message)
	return nil
}

func (m *memConsultationRepo) ListMessages(_ context.Context, consultationID string) ([]domain.ConsultationMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.ConsultationMessage(nil), m.messages[consultationID]...), nil
}

func (m *memConsultationRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.consultations, id)
	delete(m.messages, id)
	return nil
}

type memPredictionRepo struct {
	mu          sync.Mutex
	predictions []domain.Prediction
}

func newMemPredictionRepo() *memPredictionRepo {
	return &memPredictionRepo{}
}

func (m *memPredictionRepo) Create(_ context.Context, prediction *domain.Prediction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	prediction.ID = uuid.NewString()
	prediction.CreatedAt = time.Now()
	m.predictions = append(m.predictions, *prediction)
	return nil
}

func (m *memPredictionRepo) ListByUser(_ context.Context, userID string) ([]domain.Prediction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var predictions []domain.Prediction
	for _, prediction := range m.predictions {
		if prediction.UserID == userID {
			predictions = append(predictions, prediction)
		}
	}
	return predictions, nil
}

func (m *memPredictionRepo) DeleteByUser(_ context.Context, userID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var kept []domain.Prediction
	var deleted int64
	for _, prediction := range m.predictions {
		if prediction.UserID == userID {
			deleted++
			continue
		}
		kept = append(kept, prediction)
	}
	m.predictions = kept
	return deleted, nil
}

func (m *memPredictionRepo) Count(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.predictions)), nil
}

type fakeMailer struct {
	mu    sync.Mutex
	sent  []sentMail
	fail  error
	block bool
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

func (f *fakeMailer) Send(ctx context.Context, to, subject, body string) error {
	if f.block {
		<-ctx.Done()
		return ctx.Err()
	}
	if f.fail != nil {
		return f.fail
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

func (f *fakeMailer) lastSent() (sentMail, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		return sentMail{}, false
	}
	return f.sent[len(f.sent)-1], true
}
