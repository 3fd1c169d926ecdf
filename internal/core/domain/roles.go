package domain

import "fmt"

// LedgerRole is a logical financial role that posting recipes reference
// instead of hard-coding chart-of-account codes.
type LedgerRole string

const (
	RoleCash               LedgerRole = "cash"
	RoleQRISClearing       LedgerRole = "qris-clearing"
	RoleDebitClearing      LedgerRole = "debit-clearing"
	RoleAccountsReceivable LedgerRole = "accounts-receivable"
	RoleSalesRevenue       LedgerRole = "sales-revenue"
	RoleSalesDiscount      LedgerRole = "sales-discount"
	RoleTaxPayable         LedgerRole = "tax-payable"
	RoleSavingsLiability   LedgerRole = "savings-liability"
	RoleLoanReceivable     LedgerRole = "loan-receivable"
	RoleInterestIncome     LedgerRole = "interest-income"
)

// AllLedgerRoles lists every role a recipe may reference. RoleMapping
// validation requires a code for each of them.
var AllLedgerRoles = []LedgerRole{
	RoleCash,
	RoleQRISClearing,
	RoleDebitClearing,
	RoleAccountsReceivable,
	RoleSalesRevenue,
	RoleSalesDiscount,
	RoleTaxPayable,
	RoleSavingsLiability,
	RoleLoanReceivable,
	RoleInterestIncome,
}

// RoleMapping maps logical roles to chart-of-account codes. It is supplied by
// configuration and validated at startup rather than lazily on first posting.
type RoleMapping map[LedgerRole]string

// Validate ensures every known role has a non-empty code.
func (m RoleMapping) Validate() error {
	var missing []string
	for _, role := range AllLedgerRoles {
		if m[role] == "" {
			missing = append(missing, string(role))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("ledger role mapping incomplete, missing roles: %v", missing)
	}
	return nil
}

// Codes returns the distinct account codes referenced by the mapping.
func (m RoleMapping) Codes() []string {
	seen := make(map[string]struct{}, len(m))
	codes := make([]string, 0, len(m))
	for _, code := range m {
		if _, ok := seen[code]; !ok {
			seen[code] = struct{}{}
			codes = append(codes, code)
		}
	}
	return codes
}
