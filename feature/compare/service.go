package compare

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"sync"
	"time"

	"table-compare/core/source"
	"table-compare/core/storage"
	"table-compare/core/tablediff"

	"github.com/go-playground/validator/v10"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

var (
	// ErrSessionNotFound is returned for unknown or expired session ids.
	ErrSessionNotFound = errors.New("session not found")
	// ErrInvalidRequest is returned for malformed request payloads.
	ErrInvalidRequest = errors.New("invalid request")
)

// Service owns the comparison sessions of the API.
type Service struct {
	opener   *source.Opener
	client   storage.Client
	bucket   string
	cfg      tablediff.Config
	logger   *zap.Logger
	validate *validator.Validate

	mu       sync.RWMutex
	sessions map[string]*tablediff.Session
	now      func() time.Time
}

// NewService creates a compare service. client may be nil when storage is not
// configured, in which case uploads fail with source.ErrUnavailable.
func NewService(opener *source.Opener, client storage.Client, bucket string, cfg tablediff.Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		opener:   opener,
		client:   client,
		bucket:   bucket,
		cfg:      cfg,
		logger:   logger,
		validate: validator.New(),
		sessions: make(map[string]*tablediff.Session),
		now:      time.Now,
	}
}

func (s *Service) check(req any) error {
	if err := s.validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return nil
}

// Create opens both datasets, compares them and stores the new session.
func (s *Service) Create(ctx context.Context, req *CompareRequest) (*tablediff.Session, error) {
	if err := s.check(req); err != nil {
		return nil, err
	}

	oldDS, newDS, err := s.opener.OpenPair(ctx, req.Old, req.New)
	if err != nil {
		return nil, err
	}

	var sel tablediff.FieldSelection
	switch {
	case req.AllFields:
		sel = tablediff.AllFields(tablediff.FieldNames(oldDS.Fields()))
	case len(req.Fields) > 0:
		sel = tablediff.NewFieldSelection(req.Fields...)
	}

	sess := tablediff.NewSession(s.cfg, s.logger)
	if _, err := sess.Compare(ctx, oldDS, newDS, req.JoinField, sel); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	s.logger.Info("Session created",
		zap.String("session", sess.ID),
		zap.String("old", req.Old.String()),
		zap.String("new", req.New.String()))
	return sess, nil
}

// Session returns the live session with the given id.
func (s *Service) Session(id string) (*tablediff.Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok || s.expired(sess) {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	sess.Touch()
	return sess, nil
}

// Delete removes a session and reports whether it existed.
func (s *Service) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return false
	}
	delete(s.sessions, id)
	return true
}

// Len returns the number of stored sessions.
func (s *Service) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Service) expired(sess *tablediff.Session) bool {
	return s.now().Sub(sess.LastUsed()) > s.cfg.SessionTTL()
}

// Expire removes idle sessions and returns how many were removed.
func (s *Service) Expire() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if s.expired(sess) {
			delete(s.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		s.logger.Info("Expired idle sessions", zap.Int("count", removed))
	}
	return removed
}

// Run expires idle sessions periodically until ctx is done.
func (s *Service) Run(ctx context.Context) {
	interval := s.cfg.SessionTTL() / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Expire()
		}
	}
}

// View renders a session for the API with the given filter.
func (s *Service) View(id string, filter tablediff.FilterState) (*SessionView, error) {
	sess, err := s.Session(id)
	if err != nil {
		return nil, err
	}

	oldDS, newDS := sess.Datasets()
	view := &SessionView{
		ID:      sess.ID,
		Created: sess.Created,
		Old:     oldDS.Name(),
		New:     newDS.Name(),
		Filter:  filter,
	}

	sess.View(func(report *tablediff.Report, decisions *tablediff.DecisionStore) {
		view.JoinField = report.JoinField
		view.Fields = report.Fields
		view.Significant = report.Significant
		view.Summary = report.Summary
		view.Decisions = decisions.Counts()

		visible := filter.Visible(report)
		view.Records = make([]RecordView, len(visible))
		for i, rec := range visible {
			rv := RecordView{Row: i + 1, Key: rec.Key, Status: rec.Status, Cells: rec.Cells}
			if rec.Status.Actionable() {
				rv.Decision = decisions.Get(rec.Key)
			}
			view.Records[i] = rv
		}
	})
	sess.SetFilter(filter)
	return view, nil
}

// Fields describes the fields of a session.
func (s *Service) Fields(id string) (*FieldsView, error) {
	sess, err := s.Session(id)
	if err != nil {
		return nil, err
	}
	return fieldsView(sess), nil
}

func fieldsView(sess *tablediff.Session) *FieldsView {
	oldDS, newDS := sess.Datasets()
	fields := tablediff.FieldNames(oldDS.Fields())
	return &FieldsView{
		Fields:         fields,
		JoinField:      sess.JoinField(),
		JoinCandidates: tablediff.JoinCandidates(oldDS.Fields(), newDS.Fields()),
		Significant:    sess.Selection().Ordered(fields),
	}
}

// SetFields changes the significant fields and optionally the join field,
// then re-runs the comparison.
func (s *Service) SetFields(ctx context.Context, id string, req *FieldsRequest) (*FieldsView, error) {
	if err := s.check(req); err != nil {
		return nil, err
	}
	sess, err := s.Session(id)
	if err != nil {
		return nil, err
	}

	if req.JoinField != "" && req.JoinField != sess.JoinField() {
		if _, err := sess.SetJoinField(ctx, req.JoinField); err != nil {
			return nil, err
		}
	}

	sel := tablediff.NewFieldSelection(req.Fields...)
	if req.All {
		oldDS, _ := sess.Datasets()
		sel = tablediff.AllFields(tablediff.FieldNames(oldDS.Fields()))
	}
	if _, err := sess.SetSignificantFields(ctx, sel); err != nil {
		return nil, err
	}
	return fieldsView(sess), nil
}

// Decide applies a decision to the records with the given keys.
func (s *Service) Decide(id string, req *DecisionRequest) (*DecisionResult, error) {
	if err := s.check(req); err != nil {
		return nil, err
	}
	dec, err := tablediff.ParseDecision(req.Decision)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	sess, err := s.Session(id)
	if err != nil {
		return nil, err
	}

	applied, err := sess.SetDecisionByText(dec, req.Keys...)
	if err != nil {
		return nil, err
	}
	return decisionResult(sess, applied), nil
}

// DecideAll applies a decision to every record with one of the requested statuses.
func (s *Service) DecideAll(id string, req *DecisionAllRequest) (*DecisionResult, error) {
	if err := s.check(req); err != nil {
		return nil, err
	}
	dec, err := tablediff.ParseDecision(req.Decision)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	statuses := make([]tablediff.Status, 0, len(req.Statuses))
	for _, name := range req.Statuses {
		st, ok := tablediff.ParseStatus(name)
		if !ok {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidRequest, name)
		}
		statuses = append(statuses, st)
	}
	sess, err := s.Session(id)
	if err != nil {
		return nil, err
	}

	applied, err := sess.SetDecisionAll(statuses, dec)
	if err != nil {
		return nil, err
	}
	return decisionResult(sess, applied), nil
}

func decisionResult(sess *tablediff.Session, applied int) *DecisionResult {
	res := &DecisionResult{Applied: applied}
	sess.View(func(_ *tablediff.Report, decisions *tablediff.DecisionStore) {
		res.Decisions = decisions.Counts()
	})
	return res
}

// Export writes the decision-resolved CSV export of a session to w.
func (s *Service) Export(id string, filter tablediff.FilterState, w io.Writer) error {
	sess, err := s.Session(id)
	if err != nil {
		return err
	}
	return sess.ExportTo(w, filter)
}

// Upload stores the export of a session in the storage bucket under the export prefix.
func (s *Service) Upload(ctx context.Context, id string, req *ExportRequest) (*ExportResult, error) {
	if err := s.check(req); err != nil {
		return nil, err
	}
	if s.client == nil {
		return nil, fmt.Errorf("storage %w", source.ErrUnavailable)
	}
	filter, err := tablediff.ParseFilter(req.Show)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	var buf bytes.Buffer
	if err := s.Export(id, filter, &buf); err != nil {
		return nil, err
	}

	name := req.Object
	if name == "" {
		name = id + ".csv"
	}
	object := path.Join(s.cfg.ExportPrefix, path.Clean("/" + name)[1:])

	if err := storage.EnsureBucket(ctx, s.client, s.bucket, ""); err != nil {
		return nil, err
	}
	size := int64(buf.Len())
	if _, err := s.client.PutObject(ctx, s.bucket, object, &buf, size, minio.PutObjectOptions{ContentType: "text/csv"}); err != nil {
		return nil, &tablediff.IOError{Path: s.bucket + "/" + object, Err: err}
	}

	s.logger.Info("Export uploaded", zap.String("session", id), zap.String("object", object), zap.Int64("size", size))
	return &ExportResult{Bucket: s.bucket, Object: object, Size: size}, nil
}
