package conversations

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/JaimeStill/sage/pkg/pagination"
	"github.com/JaimeStill/sage/pkg/query"
	"github.com/JaimeStill/sage/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a conversation repository implementing the System interface.
func New(
	db *sql.DB,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "conversations"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Conversation], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort...).
		WhereSearch(page.Search, "Query", "Answer")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count conversations: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	records, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanConversation)
	if err != nil {
		return nil, fmt.Errorf("query conversations: %w", err)
	}

	result := pagination.NewPageResult(records, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Conversation, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	c, err := repository.QueryOne(ctx, r.db, q, args, scanConversation)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &c, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateConversation) (*Conversation, error) {
	if strings.TrimSpace(cmd.Query) == "" || strings.TrimSpace(cmd.Answer) == "" {
		return nil, ErrEmptyRecord
	}

	if cmd.SessionID == "" {
		cmd.SessionID = "default"
	}

	q := `
		INSERT INTO conversations(session_id, query, label, handler, answer)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, session_id, query, label, handler, answer, created_at`

	args := []any{cmd.SessionID, cmd.Query, cmd.Label, cmd.Handler, cmd.Answer}

	c, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Conversation, error) {
		return repository.QueryOne(ctx, tx, q, args, scanConversation)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info(
		"conversation recorded",
		"id", c.ID,
		"session", c.SessionID,
		"label", c.Label,
	)
	return &c, nil
}

// Search returns the most recent records whose query or answer contains the
// term, case-insensitively. An empty term matches nothing.
func (r *repo) Search(ctx context.Context, term string, limit int) ([]Conversation, error) {
	term = strings.TrimSpace(term)
	if term == "" || limit < 1 {
		return nil, nil
	}

	q, args := query.
		NewBuilder(projection, defaultSort...).
		WhereSearch(&term, "Query", "Answer").
		BuildPage(1, limit)

	records, err := repository.QueryMany(ctx, r.db, q, args, scanConversation)
	if err != nil {
		return nil, fmt.Errorf("search conversations: %w", err)
	}

	return records, nil
}

// Recent returns the latest records for a session, newest first.
func (r *repo) Recent(ctx context.Context, sessionID string, limit int) ([]Conversation, error) {
	if sessionID == "" || limit < 1 {
		return nil, nil
	}

	q, args := query.
		NewBuilder(projection, defaultSort...).
		WhereEquals("SessionID", &sessionID).
		BuildPage(1, limit)

	records, err := repository.QueryMany(ctx, r.db, q, args, scanConversation)
	if err != nil {
		return nil, fmt.Errorf("recent conversations: %w", err)
	}

	return records, nil
}
