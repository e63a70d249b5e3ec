package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Victor-armando18/service-bspaoh/internal/domain"
)

const pgErrUniqueViolation = "23505"

var ErrCompanyExists = errors.New("company already registered")

// Directory é o registo de empresas e de membros em PostgreSQL.
type Directory struct {
	db     *gorm.DB
	logger log.Logger
}

func NewDirectory(db *gorm.DB, logger log.Logger) *Directory {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Directory{db: db, logger: log.With(logger, "component", "directory")}
}

// Connect abre a ligação, tentando até attempts vezes.
func Connect(dsn string, attempts int, logger log.Logger) (*gorm.DB, error) {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	var lastErr error
	for i := 0; i < attempts; i++ {
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			level.Info(logger).Log("msg", "connected to postgres", "attempt", i+1)
			return db, nil
		}
		lastErr = err
		level.Warn(logger).Log("msg", "postgres connection failed", "attempt", i+1, "err", err)
		time.Sleep(2 * time.Second)
	}
	return nil, fmt.Errorf("connect postgres: %w", lastErr)
}

func (d *Directory) Migrate() error {
	return d.db.AutoMigrate(&CompanyModel{}, &MembershipModel{})
}

func (d *Directory) Lookup(ctx context.Context, orgID string) (*domain.Company, error) {
	var m CompanyModel
	err := d.db.WithContext(ctx).
		Where("org_id = ? OR siret = ? OR vat_number = ?", orgID, orgID, orgID).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrCompanyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup company %s: %w", orgID, err)
	}
	return m.toDomain(), nil
}

func (d *Directory) Register(ctx context.Context, c domain.Company) error {
	m := fromDomain(c)
	if err := d.db.WithContext(ctx).Create(&m).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation {
			return fmt.Errorf("%w: %s", ErrCompanyExists, m.OrgID)
		}
		level.Error(d.logger).Log("msg", "register company failed", "org", m.OrgID, "err", err)
		return fmt.Errorf("register company %s: %w", m.OrgID, err)
	}
	return nil
}

func (d *Directory) AddMember(ctx context.Context, userID, orgID string) error {
	m := MembershipModel{UserID: userID, OrgID: orgID}
	if err := d.db.WithContext(ctx).Where(m).FirstOrCreate(&m).Error; err != nil {
		return fmt.Errorf("add member %s to %s: %w", userID, orgID, err)
	}
	return nil
}

// Resolve devolve as organizações do utilizador, por org id, SIRET e TVA.
func (d *Directory) Resolve(ctx context.Context, userID string) (*domain.User, error) {
	var companies []CompanyModel
	err := d.db.WithContext(ctx).
		Joins("JOIN company_memberships ON company_memberships.org_id = companies.org_id").
		Where("company_memberships.user_id = ?", userID).
		Find(&companies).Error
	if err != nil {
		return nil, fmt.Errorf("resolve user %s: %w", userID, err)
	}
	if len(companies) == 0 {
		return nil, domain.ErrUserNotFound
	}
	return userFrom(userID, companies), nil
}

func userFrom(userID string, companies []CompanyModel) *domain.User {
	u := &domain.User{ID: userID}
	seen := map[string]bool{}
	add := func(id string) {
		if id != "" && !seen[id] {
			seen[id] = true
			u.OrgIDs = append(u.OrgIDs, id)
		}
	}
	for _, c := range companies {
		add(c.OrgID)
		if c.Siret != nil {
			add(*c.Siret)
		}
		if c.VatNumber != nil {
			add(*c.VatNumber)
		}
	}
	return u
}
