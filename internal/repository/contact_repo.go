package repository

import (
	"context"
	"errors"
	"fmt"

	"contacts_api/internal/model"

	"github.com/jackc/pgx/v5"
)

// ContactRepository defines operations for contact data. Every read and
// write except the uniqueness probe is keyed by owner.
type ContactRepository interface {
	Create(ctx context.Context, contact *model.Contact) error
	ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error)
	FindByOwner(ctx context.Context, owner string) ([]model.Contact, error)
	FindByOwnerAndID(ctx context.Context, owner, id string) (*model.Contact, error)
	Update(ctx context.Context, contact *model.Contact) (bool, error)
	Delete(ctx context.Context, owner, id string) (bool, error)
}

type contactRepository struct {
	db DBTX
}

// NewContactRepository creates a new ContactRepository
func NewContactRepository(db DBTX) ContactRepository {
	return &contactRepository{db: db}
}

// Create inserts a new contact into the database
func (r *contactRepository) Create(ctx context.Context, c *model.Contact) error {
	sql := `INSERT INTO contacts (contact_id, owner, name, email, phone, created_at, updated_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.Exec(ctx, sql, c.ID, c.Owner, c.Name, c.Email, c.Phone, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("failed to create contact: %w", ErrDuplicate)
		}
		return fmt.Errorf("failed to create contact: %w", err)
	}
	return nil
}

// ExistsByEmailOrPhone checks the whole collection, regardless of owner
func (r *contactRepository) ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error) {
	var exists bool
	sql := `SELECT EXISTS (SELECT 1 FROM contacts WHERE email = $1 OR phone = $2)`
	if err := r.db.QueryRow(ctx, sql, email, phone).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check contact uniqueness: %w", err)
	}
	return exists, nil
}

// FindByOwner retrieves all contacts of a user
func (r *contactRepository) FindByOwner(ctx context.Context, owner string) ([]model.Contact, error) {
	sql := `SELECT contact_id, owner, name, email, phone, created_at, updated_at
            FROM contacts WHERE owner = $1 ORDER BY created_at, contact_id`
	rows, err := r.db.Query(ctx, sql, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to query contacts by owner: %w", err)
	}
	defer rows.Close()

	var contacts []model.Contact
	for rows.Next() {
		var c model.Contact
		if err := rows.Scan(&c.ID, &c.Owner, &c.Name, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan contact row: %w", err)
		}
		contacts = append(contacts, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contact rows: %w", err)
	}
	return contacts, nil
}

// FindByOwnerAndID retrieves one contact of a user, nil if there is none
func (r *contactRepository) FindByOwnerAndID(ctx context.Context, owner, id string) (*model.Contact, error) {
	c := &model.Contact{}
	sql := `SELECT contact_id, owner, name, email, phone, created_at, updated_at
            FROM contacts WHERE owner = $1 AND contact_id = $2`
	err := r.db.QueryRow(ctx, sql, owner, id).Scan(&c.ID, &c.Owner, &c.Name, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to find contact by ID: %w", err)
	}
	return c, nil
}

// Update overwrites name, email and phone. It reports false when no contact
// matches owner and id.
func (r *contactRepository) Update(ctx context.Context, c *model.Contact) (bool, error) {
	sql := `UPDATE contacts
            SET name = $1, email = $2, phone = $3, updated_at = $4
            WHERE contact_id = $5 AND owner = $6`
	cmdTag, err := r.db.Exec(ctx, sql, c.Name, c.Email, c.Phone, c.UpdatedAt, c.ID, c.Owner)
	if err != nil {
		if isUniqueViolation(err) {
			return false, fmt.Errorf("failed to update contact: %w", ErrDuplicate)
		}
		return false, fmt.Errorf("failed to update contact: %w", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

// Delete removes a contact permanently, false when nothing matched
func (r *contactRepository) Delete(ctx context.Context, owner, id string) (bool, error) {
	sql := `DELETE FROM contacts WHERE contact_id = $1 AND owner = $2`
	cmdTag, err := r.db.Exec(ctx, sql, id, owner)
	if err != nil {
		return false, fmt.Errorf("failed to delete contact: %w", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}
