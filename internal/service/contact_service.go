package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"contacts_api/internal/model"
	"contacts_api/internal/repository"
	"contacts_api/internal/utils"
)

// ContactService performs contact CRUD scoped to the owner taken from the
// verified token. Email and phone are unique across all owners.
type ContactService interface {
	CreateContact(ctx context.Context, owner string, req model.ContactRequest) (*ContactResult, error)
	ListContacts(ctx context.Context, owner string) (*ContactResult, error)
	GetContact(ctx context.Context, owner, contactID string) (*ContactResult, error)
	UpdateContact(ctx context.Context, owner, contactID string, req model.ContactRequest) (*ContactResult, error)
	DeleteContact(ctx context.Context, owner, contactID string) (*ContactResult, error)
}

type contactService struct {
	db     repository.TxBeginner
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

// NewContactService creates a new ContactService
func NewContactService(db repository.TxBeginner, logger *slog.Logger) ContactService {
	return &contactService{
		db:     db,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  utils.NewID,
	}
}

// errRollback ends a transaction without committing and without failing the call
var errRollback = errors.New("rollback")

// withTx runs fn on repositories bound to one transaction. The transaction
// is committed only when fn returns nil and rolled back on every other path.
func (s *contactService) withTx(ctx context.Context, fn func(users repository.UserRepository, contacts repository.ContactRepository) error) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(repository.NewUserRepository(tx), repository.NewContactRepository(tx)); err != nil {
		if errors.Is(err, errRollback) {
			return nil
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *contactService) CreateContact(ctx context.Context, owner string, req model.ContactRequest) (*ContactResult, error) {
	res := &ContactResult{}
	err := s.withTx(ctx, func(users repository.UserRepository, contacts repository.ContactRepository) error {
		exists, err := users.ExistsByName(ctx, owner)
		if err != nil {
			return err
		}
		if !exists {
			res.Result = result(StatusNotFound, MsgUserNotFound)
			return errRollback
		}

		taken, err := contacts.ExistsByEmailOrPhone(ctx, req.Email, req.Phone)
		if err != nil {
			return err
		}
		if taken {
			res.Result = result(StatusConflict, MsgContactExists)
			return errRollback
		}

		now := s.now()
		contact := &model.Contact{
			ID:        s.newID(),
			Owner:     owner,
			Name:      req.Name,
			Email:     req.Email,
			Phone:     req.Phone,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := contacts.Create(ctx, contact); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				res.Result = result(StatusConflict, MsgContactExists)
				return errRollback
			}
			return err
		}
		res.Result = result(StatusOK, MsgContactSaved)
		res.Contact = contact
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}
	if res.OK() {
		s.logger.Info("contact created", slog.String("owner", owner), slog.String("contactID", res.Contact.ID))
	}
	return res, nil
}

func (s *contactService) ListContacts(ctx context.Context, owner string) (*ContactResult, error) {
	res := &ContactResult{Contacts: []model.Contact{}}
	err := s.withTx(ctx, func(_ repository.UserRepository, contacts repository.ContactRepository) error {
		found, err := contacts.FindByOwner(ctx, owner)
		if err != nil {
			return err
		}
		if len(found) == 0 {
			res.Result = result(StatusNotFound, MsgNoContacts)
			return errRollback
		}
		res.Result = result(StatusOK, MsgContactsFound)
		res.Contacts = found
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	return res, nil
}

func (s *contactService) GetContact(ctx context.Context, owner, contactID string) (*ContactResult, error) {
	res := &ContactResult{Contacts: []model.Contact{}}
	err := s.withTx(ctx, func(_ repository.UserRepository, contacts repository.ContactRepository) error {
		contact, err := contacts.FindByOwnerAndID(ctx, owner, contactID)
		if err != nil {
			return err
		}
		if contact == nil {
			res.Result = result(StatusNotFound, MsgContactMissing)
			return errRollback
		}
		res.Result = result(StatusOK, MsgContactsFound)
		res.Contact = contact
		res.Contacts = append(res.Contacts, *contact)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}
	return res, nil
}

// UpdateContact does not re-check email/phone uniqueness the way CreateContact
// does; only the unique indexes guard it.
func (s *contactService) UpdateContact(ctx context.Context, owner, contactID string, req model.ContactRequest) (*ContactResult, error) {
	res := &ContactResult{}
	err := s.withTx(ctx, func(users repository.UserRepository, contacts repository.ContactRepository) error {
		exists, err := users.ExistsByName(ctx, owner)
		if err != nil {
			return err
		}
		if !exists {
			res.Result = result(StatusNotFound, MsgUserNotFound)
			return errRollback
		}

		contact, err := contacts.FindByOwnerAndID(ctx, owner, contactID)
		if err != nil {
			return err
		}
		if contact == nil {
			res.Result = result(StatusNotFound, MsgContactNotFound)
			return errRollback
		}

		contact.Name = req.Name
		contact.Email = req.Email
		contact.Phone = req.Phone
		contact.UpdatedAt = s.now()

		found, err := contacts.Update(ctx, contact)
		if err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				res.Result = result(StatusConflict, MsgContactExists)
				return errRollback
			}
			return err
		}
		if !found {
			res.Result = result(StatusNotFound, MsgContactNotFound)
			return errRollback
		}
		res.Result = result(StatusOK, MsgContactUpdated)
		res.Contact = contact
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update contact: %w", err)
	}
	if res.OK() {
		s.logger.Info("contact updated", slog.String("owner", owner), slog.String("contactID", contactID))
	}
	return res, nil
}

func (s *contactService) DeleteContact(ctx context.Context, owner, contactID string) (*ContactResult, error) {
	res := &ContactResult{}
	err := s.withTx(ctx, func(users repository.UserRepository, contacts repository.ContactRepository) error {
		exists, err := users.ExistsByName(ctx, owner)
		if err != nil {
			return err
		}
		if !exists {
			res.Result = result(StatusNotFound, MsgUserNotFound)
			return errRollback
		}

		found, err := contacts.Delete(ctx, owner, contactID)
		if err != nil {
			return err
		}
		if !found {
			res.Result = result(StatusNotFound, MsgContactNotFound)
			return errRollback
		}
		res.Result = result(StatusOK, MsgContactDeleted)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to delete contact: %w", err)
	}
	if res.OK() {
		s.logger.Info("contact deleted", slog.String("owner", owner), slog.String("contactID", contactID))
	}
	return res, nil
}
