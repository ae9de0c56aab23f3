package notification

import (
	"context"
	"errors"
	"fmt"
)

// Pusher delivers realtime events to a connected user. Delivery is best
// effort; a false return means the user has no live connection.
type Pusher interface {
	SendToUser(userID int64, message any) bool
}

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	GetByID(ctx context.Context, id int64) (*Notification, error)
	GetByUserID(ctx context.Context, userID int64, limit int) ([]Notification, error)
	CountUnread(ctx context.Context, userID int64) (int64, error)
	MarkAsRead(ctx context.Context, id, userID int64) error
	GetUnreadIDs(ctx context.Context, userID int64) ([]int64, error)
	MarkReadByIDs(ctx context.Context, userID int64, ids []int64) error
}

var ErrNotFound = errors.New("notification not found")

type Service struct {
	repo   Repository
	pusher Pusher
}

func NewService(repo Repository, pusher Pusher) *Service {
	return &Service{
		repo:   repo,
		pusher: pusher,
	}
}

// realtimeEvent is the wire shape pushed over the websocket feed.
type realtimeEvent struct {
	Event        string        `json:"event"`
	Notification *Notification `json:"notification"`
}

// Create persists a notification and pushes it to the recipient's live feed
// when they are connected.
func (s *Service) Create(ctx context.Context, n *Notification) error {
	if err := s.repo.Create(ctx, n); err != nil {
		return err
	}

	if s.pusher != nil {
		s.pusher.SendToUser(n.UserID, realtimeEvent{
			Event:        "notification.created",
			Notification: n,
		})
	}
	return nil
}

func (s *Service) List(ctx context.Context, userID int64, limit int) ([]Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.repo.GetByUserID(ctx, userID, limit)
}

func (s *Service) CountUnread(ctx context.Context, userID int64) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

func (s *Service) MarkAsRead(ctx context.Context, id, userID int64) (*Notification, error) {
	if err := s.repo.MarkAsRead(ctx, id, userID); err != nil {
		if errors.Is(err, ErrNotificationNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.pusher != nil {
		s.pusher.SendToUser(userID, realtimeEvent{
			Event:        "notification.read",
			Notification: n,
		})
	}
	return n, nil
}

// MarkAllAsRead reads the current unread id list and then marks exactly those
// rows. A notification created between the two steps stays unread.
func (s *Service) MarkAllAsRead(ctx context.Context, userID int64) (int, error) {
	ids, err := s.repo.GetUnreadIDs(ctx, userID)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}
	if err := s.repo.MarkReadByIDs(ctx, userID, ids); err != nil {
		return 0, err
	}
	return len(ids), nil
}

func (s *Service) notify(ctx context.Context, userID int64, typ Type, title, message string, relatedID int64, relatedType string) error {
	n := &Notification{
		UserID:      userID,
		Type:        typ,
		Title:       title,
		Message:     message,
		RelatedID:   &relatedID,
		RelatedType: relatedType,
	}
	return s.Create(ctx, n)
}

func (s *Service) NotifyProposalReceived(ctx context.Context, clientID, requestID, proposalID int64, price float64) error {
	return s.notify(ctx, clientID,
		TypeNewProposal,
		"Nova proposta recebida",
		fmt.Sprintf("Você recebeu uma proposta de %.2f Kz para o seu pedido", price),
		proposalID, "proposal")
}

func (s *Service) NotifyProposalRejected(ctx context.Context, professionalID, requestID, proposalID int64) error {
	return s.notify(ctx, professionalID,
		TypeProposalRejected,
		"Proposta recusada",
		"O cliente recusou a sua proposta",
		proposalID, "proposal")
}

func (s *Service) NotifyRequestCancelled(ctx context.Context, professionalID, requestID int64, reason string) error {
	return s.notify(ctx, professionalID,
		TypeRequestCancelled,
		"Pedido cancelado",
		fmt.Sprintf("O cliente cancelou o pedido: %s", reason),
		requestID, "service_request")
}

func (s *Service) NotifyWorkStarted(ctx context.Context, clientID, requestID int64) error {
	return s.notify(ctx, clientID,
		TypeWorkStarted,
		"Serviço iniciado",
		"O profissional iniciou a execução do seu pedido",
		requestID, "service_request")
}

func (s *Service) NotifyWorkCompleted(ctx context.Context, professionalID, requestID int64) error {
	return s.notify(ctx, professionalID,
		TypeWorkCompleted,
		"Serviço concluído",
		"O cliente confirmou a conclusão do serviço",
		requestID, "service_request")
}

func (s *Service) NotifyVerificationApproved(ctx context.Context, professionalID int64) error {
	return s.notify(ctx, professionalID,
		TypeVerificationApproved,
		"Verificação aprovada",
		"O seu perfil profissional foi verificado, já pode enviar propostas",
		professionalID, "user")
}

func (s *Service) NotifyVerificationRejected(ctx context.Context, professionalID int64, reason string) error {
	msg := "O seu pedido de verificação foi recusado"
	if reason != "" {
		msg = fmt.Sprintf("O seu pedido de verificação foi recusado: %s", reason)
	}
	return s.notify(ctx, professionalID,
		TypeVerificationRejected,
		"Verificação recusada",
		msg,
		professionalID, "user")
}

func (s *Service) NotifyNewReview(ctx context.Context, professionalID, reviewID int64, rating int) error {
	return s.notify(ctx, professionalID,
		TypeNewReview,
		"Nova avaliação",
		fmt.Sprintf("Você recebeu uma avaliação de %d estrelas", rating),
		reviewID, "review")
}
