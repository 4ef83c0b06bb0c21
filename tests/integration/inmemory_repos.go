package integration

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"realty-backoffice/internal/core/domain"

	"github.com/google/uuid"
)

// --- In-Memory Invoice Repo ---

type inMemoryInvoiceRepo struct {
	mu       sync.RWMutex
	invoices map[uuid.UUID]*domain.Invoice

	// updateErr, when set, makes the next UpdateDispatch calls fail.
	updateErr error
}

func newInMemoryInvoiceRepo() *inMemoryInvoiceRepo {
	return &inMemoryInvoiceRepo{invoices: make(map[uuid.UUID]*domain.Invoice)}
}

func (r *inMemoryInvoiceRepo) add(inv domain.Invoice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := inv
	r.invoices[inv.ID] = &cp
}

func (r *inMemoryInvoiceRepo) failUpdates(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updateErr = err
}

func (r *inMemoryInvoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	inv, ok := r.invoices[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r *inMemoryInvoiceRepo) ListByClient(ctx context.Context, clientID uuid.UUID) ([]domain.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Invoice
	for _, inv := range r.invoices {
		if inv.ClientID == clientID {
			out = append(out, *inv)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].DueDate.After(out[j].DueDate)
	})
	return out, nil
}

func (r *inMemoryInvoiceRepo) UpdateDispatch(ctx context.Context, id uuid.UUID, u domain.DispatchUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	inv, ok := r.invoices[id]
	if !ok {
		return fmt.Errorf("invoice not found")
	}
	inv.Sent = u.Sent
	inv.SentAt = u.SentAt
	inv.LastError = u.LastError
	inv.Attempts = u.Attempts
	return nil
}

// --- In-Memory Client Repo ---

type inMemoryClientRepo struct {
	mu      sync.RWMutex
	clients map[uuid.UUID]*domain.Client
}

func newInMemoryClientRepo() *inMemoryClientRepo {
	return &inMemoryClientRepo{clients: make(map[uuid.UUID]*domain.Client)}
}

func (r *inMemoryClientRepo) add(c domain.Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := c
	r.clients[c.ID] = &cp
}

func (r *inMemoryClientRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.clients[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *inMemoryClientRepo) GetByCPF(ctx context.Context, cpf string) (*domain.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.clients {
		if c.CPF == cpf {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryClientRepo) GetByCPFAndBirthDate(ctx context.Context, cpf string, birthDate time.Time) (*domain.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.clients {
		if c.CPF == cpf && c.BirthDate.Equal(birthDate) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

// --- In-Memory Project Repo ---

type inMemoryProjectRepo struct {
	mu       sync.RWMutex
	projects []domain.Project
}

func newInMemoryProjectRepo() *inMemoryProjectRepo {
	return &inMemoryProjectRepo{}
}

func (r *inMemoryProjectRepo) add(p domain.Project) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.projects = append(r.projects, p)
}

func (r *inMemoryProjectRepo) ListByClient(ctx context.Context, clientID uuid.UUID) ([]domain.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Project
	for _, p := range r.projects {
		if p.ClientID == clientID {
			out = append(out, p)
		}
	}
	return out, nil
}

// --- In-Memory Property Repo ---

type inMemoryPropertyRepo struct {
	mu         sync.RWMutex
	properties map[uuid.UUID]*domain.Property
}

func newInMemoryPropertyRepo() *inMemoryPropertyRepo {
	return &inMemoryPropertyRepo{properties: make(map[uuid.UUID]*domain.Property)}
}

func (r *inMemoryPropertyRepo) Create(ctx context.Context, p *domain.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.properties[p.ID] = &cp
	return nil
}

func (r *inMemoryPropertyRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.properties[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *inMemoryPropertyRepo) List(ctx context.Context, status *domain.PropertyStatus) ([]domain.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Property
	for _, p := range r.properties {
		if status != nil && p.Status != *status {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *inMemoryPropertyRepo) Update(ctx context.Context, p *domain.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.properties[p.ID]; !ok {
		return fmt.Errorf("property not found")
	}
	cp := *p
	r.properties[p.ID] = &cp
	return nil
}

func (r *inMemoryPropertyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.properties, id)
	return nil
}

// --- In-Memory Contact Repo ---

type inMemoryContactRepo struct {
	mu       sync.RWMutex
	messages []domain.ContactMessage
}

func newInMemoryContactRepo() *inMemoryContactRepo {
	return &inMemoryContactRepo{}
}

func (r *inMemoryContactRepo) Create(ctx context.Context, m *domain.ContactMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, *m)
	return nil
}

func (r *inMemoryContactRepo) List(ctx context.Context, page, pageSize int) ([]domain.ContactMessage, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	// Newest first, like the SQL implementation.
	out := make([]domain.ContactMessage, len(r.messages))
	copy(out, r.messages)
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	total := int64(len(out))
	start := (page - 1) * pageSize
	if start >= len(out) {
		return []domain.ContactMessage{}, total, nil
	}
	end := start + pageSize
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], total, nil
}

// --- In-Memory Dispatch Log Repo ---

type inMemoryDispatchLogRepo struct {
	mu   sync.RWMutex
	logs []domain.DispatchLog
}

func newInMemoryDispatchLogRepo() *inMemoryDispatchLogRepo {
	return &inMemoryDispatchLogRepo{}
}

func (r *inMemoryDispatchLogRepo) Create(ctx context.Context, log *domain.DispatchLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append(r.logs, *log)
	return nil
}

func (r *inMemoryDispatchLogRepo) ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]domain.DispatchLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.DispatchLog
	for _, l := range r.logs {
		if l.InvoiceID == invoiceID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
