package mapping

import (
	"github.com/kliniku/ledgercore/internal/core/domain"
	"github.com/kliniku/ledgercore/internal/models"
)

// ToModelBudgetPlan converts a domain.BudgetPlan for DB storage.
func ToModelBudgetPlan(d domain.BudgetPlan) models.BudgetPlan {
	return models.BudgetPlan{
		PlanID:      d.PlanID,
		Year:        d.Year,
		Scenario:    d.Scenario,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBudgetPlan converts a models.BudgetPlan from the DB.
func ToDomainBudgetPlan(m models.BudgetPlan) domain.BudgetPlan {
	return domain.BudgetPlan{
		PlanID:      m.PlanID,
		Year:        m.Year,
		Scenario:    m.Scenario,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelBudgetItem converts a domain.BudgetItem for DB storage.
func ToModelBudgetItem(d domain.BudgetItem) models.BudgetItem {
	return models.BudgetItem{
		ItemID:      d.ItemID,
		PlanID:      d.PlanID,
		AccountCode: d.AccountCode,
		Amount:      d.Amount,
		Notes:       d.Notes,
	}
}

// ToDomainBudgetItem converts a models.BudgetItem from the DB.
func ToDomainBudgetItem(m models.BudgetItem) domain.BudgetItem {
	return domain.BudgetItem{
		ItemID:      m.ItemID,
		PlanID:      m.PlanID,
		AccountCode: m.AccountCode,
		Amount:      m.Amount,
		Notes:       m.Notes,
	}
}
