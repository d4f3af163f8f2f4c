package startups

import (
	"context"
	"errors"
	"time"

	"startup-marketplace/internal/errs"

	"gorm.io/gorm"
)

var summaryColumns = []string{
	"id", "name", "industry", "year_founded", "description", "website_link",
	"founder_background", "team_size", "sell_equity", "sell_business",
	"reason_for_selling", "desired_buyer_profile", "asking_price", "created_at",
}

var sectionAssociations = []string{
	"Financials", "Traction", "SalesMarketing", "Operational", "Legal", "Assets", "Contacts",
}

// Patch is a partial update. Core maps column names to new values; nil sections are untouched.
// Fields lists the attributes sent for a section. Listed attributes are written even when nil;
// a section without an entry only writes its non-zero attributes.
type Patch struct {
	Core           map[string]any
	Fields         map[Section][]string
	Financials     *Financials
	Traction       *Traction
	SalesMarketing *SalesMarketing
	Operational    *Operational
	Legal          *Legal
	Assets         *Assets
	Contacts       *Contacts
}

func withSections(db *gorm.DB) *gorm.DB {
	for _, a := range sectionAssociations {
		db = db.Preload(a)
	}
	return db
}

// Load returns the full aggregate for id.
func Load(ctx context.Context, db *gorm.DB, id uint) (*Details, error) {
	var s Startup
	err := withSections(db.WithContext(ctx)).First(&s, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("Startup not found")
	}
	if err != nil {
		return nil, errs.Database("failed to load startup", err)
	}
	return &Details{Startup: s}, nil
}

// Create inserts the core row and any provided sections in one transaction.
func Create(ctx context.Context, db *gorm.DB, ownerID uint, s *Startup) error {
	s.ID = 0
	s.UserID = ownerID
	s.resetSectionKeys()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// associations are created inside the same transaction
		return tx.Create(s).Error
	})
	return errs.Database("failed to create startup", err)
}

// Update applies p to a startup owned by userID. Core and all sections commit together.
func Update(ctx context.Context, db *gorm.DB, id, userID uint, p Patch) (*Startup, error) {
	var out Startup
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireOwner(tx, id, userID, "update"); err != nil {
			return err
		}

		if len(p.Core) > 0 {
			delete(p.Core, "id")
			delete(p.Core, "user_id")
			if err := tx.Model(&Startup{}).Where("id = ?", id).Updates(p.Core).Error; err != nil {
				return err
			}
		}

		if err := upsertSection(tx, id, p.Financials != nil, p.Financials, &Financials{}, p.Fields[SectionFinancials]); err != nil {
			return err
		}
		if err := upsertSection(tx, id, p.Traction != nil, p.Traction, &Traction{}, p.Fields[SectionTraction]); err != nil {
			return err
		}
		if err := upsertSection(tx, id, p.SalesMarketing != nil, p.SalesMarketing, &SalesMarketing{}, p.Fields[SectionSalesMarketing]); err != nil {
			return err
		}
		if err := upsertSection(tx, id, p.Operational != nil, p.Operational, &Operational{}, p.Fields[SectionOperational]); err != nil {
			return err
		}
		if err := upsertSection(tx, id, p.Legal != nil, p.Legal, &Legal{}, p.Fields[SectionLegal]); err != nil {
			return err
		}
		if err := upsertSection(tx, id, p.Assets != nil, p.Assets, &Assets{}, p.Fields[SectionAssets]); err != nil {
			return err
		}
		if err := upsertSection(tx, id, p.Contacts != nil, p.Contacts, &Contacts{}, p.Fields[SectionContacts]); err != nil {
			return err
		}

		return tx.First(&out, id).Error
	})
	if err != nil {
		if errs.KindOf(err) != errs.KindDatabase {
			return nil, err
		}
		return nil, errs.Database("failed to update startup", err)
	}
	return &out, nil
}

type sectionRow interface {
	Attributes() map[string]any
}

// upsertSection updates the existing row for the startup or inserts patch as a new one.
func upsertSection(tx *gorm.DB, startupID uint, present bool, patch, model sectionRow, fields []string) error {
	if !present {
		return nil
	}
	err := tx.Where("startup_id = ?", startupID).First(model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		setStartupID(patch, startupID)
		return tx.Create(patch).Error
	}
	if err != nil {
		return err
	}
	setStartupID(patch, startupID)
	if cols := writableColumns(model, fields); len(cols) > 0 {
		return tx.Model(model).Select(cols).Updates(patch).Error
	}
	return tx.Model(model).Omit("id", "startup_id").Updates(patch).Error
}

// writableColumns keeps the fields that are real section attributes, minus the keys.
func writableColumns(model sectionRow, fields []string) []string {
	attrs := model.Attributes()
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f == "id" || f == "startup_id" {
			continue
		}
		if _, ok := attrs[f]; ok {
			out = append(out, f)
		}
	}
	return out
}

// resetSectionKeys clears client-supplied keys so gorm assigns them on insert.
func (s *Startup) resetSectionKeys() {
	if s.Financials != nil {
		setStartupID(s.Financials, 0)
	}
	if s.Traction != nil {
		setStartupID(s.Traction, 0)
	}
	if s.SalesMarketing != nil {
		setStartupID(s.SalesMarketing, 0)
	}
	if s.Operational != nil {
		setStartupID(s.Operational, 0)
	}
	if s.Legal != nil {
		setStartupID(s.Legal, 0)
	}
	if s.Assets != nil {
		setStartupID(s.Assets, 0)
	}
	if s.Contacts != nil {
		setStartupID(s.Contacts, 0)
	}
}

func setStartupID(v any, startupID uint) {
	switch s := v.(type) {
	case *Financials:
		s.ID, s.StartupID = 0, startupID
	case *Traction:
		s.ID, s.StartupID = 0, startupID
	case *SalesMarketing:
		s.ID, s.StartupID = 0, startupID
	case *Operational:
		s.ID, s.StartupID = 0, startupID
	case *Legal:
		s.ID, s.StartupID = 0, startupID
	case *Assets:
		s.ID, s.StartupID = 0, startupID
	case *Contacts:
		s.ID, s.StartupID = 0, startupID
	}
}

// Delete removes a startup owned by userID together with its sections, views and favorites.
func Delete(ctx context.Context, db *gorm.DB, id, userID uint) error {
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireOwner(tx, id, userID, "delete"); err != nil {
			return err
		}
		for _, m := range []any{
			&Financials{}, &Traction{}, &SalesMarketing{}, &Operational{},
			&Legal{}, &Assets{}, &Contacts{}, &View{},
		} {
			if err := tx.Where("startup_id = ?", id).Delete(m).Error; err != nil {
				return err
			}
		}
		if err := tx.Exec("DELETE FROM favorites WHERE startup_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&Startup{}, id).Error
	})
	if err != nil && errs.KindOf(err) == errs.KindDatabase {
		return errs.Database("failed to delete startup", err)
	}
	return err
}

func requireOwner(tx *gorm.DB, id, userID uint, verb string) error {
	var owner Startup
	err := tx.Select("id", "user_id").First(&owner, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NotFound("Startup not found")
	}
	if err != nil {
		return err
	}
	if owner.UserID != userID {
		return errs.Authorization("You are not authorized to " + verb + " this startup")
	}
	return nil
}

// ListPublic returns core summaries matching f, newest first.
func ListPublic(ctx context.Context, db *gorm.DB, f Filters) ([]Summary, error) {
	q := db.WithContext(ctx).Model(&Startup{}).Select(summaryColumns)
	if f.Industry != "" {
		q = q.Where("industry = ?", f.Industry)
	}
	if f.MinTeamSize != nil {
		q = q.Where("team_size >= ?", *f.MinTeamSize)
	}
	if f.MaxTeamSize != nil {
		q = q.Where("team_size <= ?", *f.MaxTeamSize)
	}
	if f.SellEquity != nil {
		q = q.Where("sell_equity = ?", *f.SellEquity)
	}
	if f.SellBusiness != nil {
		q = q.Where("sell_business = ?", *f.SellBusiness)
	}

	out := []Summary{}
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, errs.Database("failed to fetch startups", err)
	}
	return out, nil
}

// Exists reports whether a startup with id is present.
func Exists(ctx context.Context, db *gorm.DB, id uint) (bool, error) {
	var n int64
	if err := db.WithContext(ctx).Model(&Startup{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, errs.Database("failed to check startup", err)
	}
	return n > 0, nil
}

// CountOwned returns how many startups userID owns.
func CountOwned(ctx context.Context, db *gorm.DB, userID uint) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&Startup{}).Where("user_id = ?", userID).Count(&n).Error
	return n, errs.Database("failed to count startups", err)
}
