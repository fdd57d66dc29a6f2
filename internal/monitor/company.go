package monitor

import (
	"fmt"
	"sort"
	"time"

	"github.com/tornsuite/consigliere/internal/torn"
)

// CheckCompany evaluates one company snapshot against the stock and
// employee-activity thresholds. Results are ordered: empty stock first,
// then low stock, then inactive employees, each alphabetically (the raw
// document is map-shaped, so insertion order means nothing).
func CheckCompany(company torn.Company, now time.Time) []Notification {
	var empty, low, idle []Notification

	stock := make([]torn.StockItem, len(company.Stock))
	copy(stock, company.Stock)
	sort.Slice(stock, func(i, j int) bool { return stock[i].Name < stock[j].Name })

	for _, item := range stock {
		switch {
		case item.InStock == 0:
			empty = append(empty, Notification{
				Category: CategoryStockEmpty,
				Icon:     "📦", Title: "Stock Empty",
				Body: fmt.Sprintf("*%s* is out of stock. Restock now, Boss.", item.Name),
			})
		case item.InStock < lowStockThreshold:
			low = append(low, Notification{
				Category: CategoryStockLow,
				Icon:     "📦", Title: "Stock Low",
				Body: fmt.Sprintf("*%s*: %d left.", item.Name, item.InStock),
			})
		}
	}

	names := make([]string, 0, len(company.Employees))
	byName := make(map[string]torn.Employee, len(company.Employees))
	for _, emp := range company.Employees {
		names = append(names, emp.Name)
		byName[emp.Name] = emp
	}
	sort.Strings(names)

	for _, name := range names {
		emp := byName[name]
		if emp.LastAction <= 0 {
			continue
		}
		days := int(now.Unix()-emp.LastAction) / 86400
		if days >= inactiveDaysThreshold {
			idle = append(idle, Notification{
				Category: CategoryInactiveWorker,
				Icon:     "💤", Title: "Slacker Alert",
				Body: fmt.Sprintf("*%s* (%s) has not logged in for %d days.",
					emp.Name, emp.Position, days),
			})
		}
	}

	out := make([]Notification, 0, len(empty)+len(low)+len(idle))
	out = append(out, empty...)
	out = append(out, low...)
	out = append(out, idle...)
	return out
}

// companyDisabledNotice is the one-time record emitted when a permission
// failure persistently disables the company checker.
func companyDisabledNotice() Notification {
	return Notification{
		Category: CategoryCompanyDisabled,
		Icon:     "⚠️", Title: "Company Monitoring Disabled",
		Body: "The API key lacks permission for company data. Re-enable with `tornctl company enable` once the key is upgraded.",
	}
}
