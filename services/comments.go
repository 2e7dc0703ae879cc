package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/meetmeal/meetmeal-go/models"
)

// CommentService governs the comments embedded in an event. Only the
// author may touch their own comment; admins get no override here, unlike
// guest and event operations.
type CommentService struct {
	events EventStore
}

func NewCommentService(events EventStore) *CommentService {
	return &CommentService{events: events}
}

// Add appends a comment with a fresh id and returns it.
func (s *CommentService) Add(ctx context.Context, p Principal, eventID primitive.ObjectID, content string) (*models.Comment, error) {
	comment := models.Comment{
		ID:        primitive.NewObjectID(),
		UserID:    p.UserID,
		Content:   content,
		CreatedAt: time.Now(),
	}

	ok, err := s.events.PushComment(ctx, eventID, comment)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrEventNotFound
	}
	return &comment, nil
}

// Update rewrites the content of the principal's own comment.
func (s *CommentService) Update(ctx context.Context, p Principal, eventID, commentID primitive.ObjectID, content string) error {
	ok, err := s.events.SetCommentContent(ctx, eventID, commentID, p.UserID, content)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	return s.classify(ctx, p, eventID, commentID)
}

// Delete removes the principal's own comment.
func (s *CommentService) Delete(ctx context.Context, p Principal, eventID, commentID primitive.ObjectID) error {
	ok, err := s.events.PullComment(ctx, eventID, commentID, p.UserID)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	return s.classify(ctx, p, eventID, commentID)
}

// classify names the reason a guarded comment write matched nothing.
func (s *CommentService) classify(ctx context.Context, p Principal, eventID, commentID primitive.ObjectID) error {
	event, err := s.events.GetEvent(ctx, eventID)
	if err != nil {
		return err
	}
	if event == nil {
		return ErrEventNotFound
	}
	comment := event.FindComment(commentID)
	if comment == nil {
		return ErrCommentNotFound
	}
	if comment.UserID != p.UserID {
		return ErrAccessDenied
	}
	return ErrConflict
}
