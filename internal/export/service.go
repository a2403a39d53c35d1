package export

import (
	"context"

	"github.com/sandeepvarma05/event-planner-backend/apperrors"
	"github.com/sandeepvarma05/event-planner-backend/config"
	"github.com/sandeepvarma05/event-planner-backend/internal/auditlog"
	"github.com/sandeepvarma05/event-planner-backend/internal/budget"
	"github.com/sandeepvarma05/event-planner-backend/utils"
)

type Service struct {
	Repo      *Repository
	Exporter  *Exporter
	BudgetSvc *budget.Service
	AuditSvc  auditlog.Service
	Cfg       *config.Config
}

func NewService(r *Repository, ex *Exporter, budgetSvc *budget.Service, auditSvc auditlog.Service, cfg *config.Config) *Service {
	return &Service{Repo: r, Exporter: ex, BudgetSvc: budgetSvc, AuditSvc: auditSvc, Cfg: cfg}
}

// AccountExport assembles the full account projection and renders it as
// JSON.
func (s *Service) AccountExport(userID uint, ip string) ([]byte, string, string, error) {
	profile, err := s.Repo.UserProfile(userID)
	if err != nil {
		return nil, "", "", apperrors.Persistence("accountExport", "user", err)
	}
	if profile == nil {
		return nil, "", "", apperrors.NotFound("accountExport", "user", "")
	}

	hosted, err := s.Repo.HostedEvents(userID)
	if err != nil {
		return nil, "", "", apperrors.Persistence("accountExport", "event", err)
	}
	attending, err := s.Repo.AttendingEvents(userID)
	if err != nil {
		return nil, "", "", apperrors.Persistence("accountExport", "guest", err)
	}
	tickets, err := s.Repo.Tickets(userID)
	if err != nil {
		return nil, "", "", apperrors.Persistence("accountExport", "guest", err)
	}
	for i := range tickets {
		tickets[i].DeepLink = utils.RSVPLink(s.Cfg.AppScheme, tickets[i].EventID, tickets[i].GuestID)
	}

	data, name, mime, err := s.Exporter.AccountJSON(s.Cfg.AppVersion, profile, hosted, attending, tickets)
	if err != nil {
		return nil, "", "", apperrors.Persistence("accountExport", "export", err)
	}

	s.AuditSvc.LogAction(context.Background(), &userID, nil, "ACCOUNT_EXPORTED",
		map[string]interface{}{"hosted_events": len(hosted), "attending_events": len(attending)}, ip, "success")
	return data, name, mime, nil
}

// GuestList renders the event's guest list as xlsx or csv.
func (s *Service) GuestList(eventID, format string, userID uint, ip string) ([]byte, string, string, error) {
	rows, err := s.Repo.GuestRows(eventID)
	if err != nil {
		return nil, "", "", apperrors.Persistence("guestListExport", "guest", err)
	}
	title, err := s.Repo.EventTitle(eventID)
	if err != nil {
		return nil, "", "", apperrors.Persistence("guestListExport", "event", err)
	}

	var data []byte
	var name, mime string
	switch format {
	case "csv":
		data, name, mime, err = s.Exporter.GuestListCSV(rows)
	case "", "xlsx", "excel":
		data, name, mime, err = s.Exporter.GuestListExcel(title, rows)
	default:
		return nil, "", "", apperrors.Validation("guestListExport", "export", "format must be xlsx or csv")
	}
	if err != nil {
		return nil, "", "", apperrors.Persistence("guestListExport", "export", err)
	}

	s.AuditSvc.LogAction(context.Background(), &userID, &eventID, "GUEST_LIST_EXPORTED",
		map[string]interface{}{"format": format, "rows": len(rows)}, ip, "success")
	return data, name, mime, nil
}

// BudgetReport renders the budget summary as a PDF.
func (s *Service) BudgetReport(eventID string, userID uint, ip string) ([]byte, string, string, error) {
	summary, err := s.BudgetSvc.GetSummary(eventID)
	if err != nil {
		return nil, "", "", err
	}
	title, err := s.Repo.EventTitle(eventID)
	if err != nil {
		return nil, "", "", apperrors.Persistence("budgetExport", "event", err)
	}

	data, name, mime, err := s.Exporter.BudgetPDF(title, summary)
	if err != nil {
		return nil, "", "", apperrors.Persistence("budgetExport", "export", err)
	}

	s.AuditSvc.LogAction(context.Background(), &userID, &eventID, "BUDGET_EXPORTED",
		map[string]interface{}{"categories": len(summary.Categories)}, ip, "success")
	return data, name, mime, nil
}
