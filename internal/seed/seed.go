// Package seed loads the demo portfolio into any repository.Store.
package seed

import (
	"context"
	"fmt"
	"time"

	"digiplot/internal/domain"
	"digiplot/internal/repository"
)

// Fixtures reports the ids the store assigned to the seeded records.
type Fixtures struct {
	LandlordID  int64
	PropertyIDs []int64
	UnitIDs     []int64
	TenantIDs   []int64
	PaymentIDs  []int64
	RequestIDs  []int64
}

// DemoTenantID is the tenant the demo login resolves to.
func (f *Fixtures) DemoTenantID() int64 { return f.TenantIDs[0] }

type unitSeed struct {
	property  int
	number    string
	floor     int
	bedrooms  int
	bathrooms int
	rent      int64
	status    domain.UnitStatus
}

type tenantSeed struct {
	unit        int
	name        string
	email       string
	phone       string
	movedInAgo  int // months
	movedOutAgo int // months, 0 = still there
	contact     string
	contactTel  string
}

// Load writes the demo data. Dates are relative to now so the dashboards
// always have a current month to show.
func Load(ctx context.Context, st *repository.Store, now time.Time) (*Fixtures, error) {
	f := &Fixtures{}
	month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	landlord := &domain.Landlord{
		Name:        "John Kamau",
		Email:       "landlord@digiplot.co.ke",
		PhoneNumber: "+254712345678",
		CreatedAt:   month.AddDate(-2, 0, 0),
	}
	id, err := st.Landlords.CreateLandlord(ctx, landlord)
	if err != nil {
		return nil, fmt.Errorf("failed to seed landlord: %w", err)
	}
	f.LandlordID = id

	properties := []domain.Property{
		{Name: "Sunset Apartments", Location: "Kilimani, Nairobi", Address: "Argwings Kodhek Rd", Description: "Modern apartments close to Yaya Centre."},
		{Name: "Greenview Residences", Location: "Westlands, Nairobi", Address: "Waiyaki Way", Description: "Family units with a garden and playground."},
		{Name: "Riverside Heights", Location: "Kileleshwa, Nairobi", Address: "Othaya Rd", Description: "Quiet block along the river."},
	}
	for i := range properties {
		p := properties[i]
		p.LandlordID = f.LandlordID
		p.CreatedAt = month.AddDate(-18+i, 0, 0)
		p.UpdatedAt = p.CreatedAt
		id, err := st.Properties.CreateProperty(ctx, &p)
		if err != nil {
			return nil, fmt.Errorf("failed to seed property %q: %w", p.Name, err)
		}
		f.PropertyIDs = append(f.PropertyIDs, id)
	}

	units := []unitSeed{
		{0, "A1", 1, 2, 1, 25000, domain.UnitVacant},
		{0, "A2", 1, 1, 1, 18000, domain.UnitVacant},
		{0, "B1", 2, 3, 2, 35000, domain.UnitVacant},
		{1, "G1", 0, 2, 2, 30000, domain.UnitVacant},
		{1, "G2", 0, 2, 2, 30000, domain.UnitMaintenance},
		{1, "F1", 1, 3, 2, 42000, domain.UnitVacant},
		{2, "R1", 1, 1, 1, 15000, domain.UnitVacant},
		{2, "R2", 2, 2, 1, 22000, domain.UnitVacant},
	}
	unitRows := make([]*domain.Unit, 0, len(units))
	for _, us := range units {
		u := &domain.Unit{
			PropertyID: f.PropertyIDs[us.property],
			UnitNumber: us.number,
			Floor:      us.floor,
			Bedrooms:   us.bedrooms,
			Bathrooms:  us.bathrooms,
			RentAmount: us.rent,
			Status:     us.status,
			CreatedAt:  month.AddDate(-12, 0, 0),
			UpdatedAt:  month.AddDate(-12, 0, 0),
		}
		id, err := st.Units.CreateUnit(ctx, u)
		if err != nil {
			return nil, fmt.Errorf("failed to seed unit %s: %w", us.number, err)
		}
		f.UnitIDs = append(f.UnitIDs, id)
		unitRows = append(unitRows, u)
	}

	tenants := []tenantSeed{
		{0, "Jane Wanjiku", "tenant@digiplot.co.ke", "+254722000001", 10, 0, "Peter Wanjiku", "+254722000101"},
		{2, "Brian Otieno", "brian.otieno@example.co.ke", "+254722000002", 7, 0, "Mary Otieno", "+254722000102"},
		{3, "Aisha Mohamed", "aisha.mohamed@example.co.ke", "+254722000003", 5, 0, "Hassan Mohamed", "+254722000103"},
		{5, "David Mwangi", "david.mwangi@example.co.ke", "+254722000004", 3, 0, "Grace Mwangi", "+254722000104"},
		{6, "Faith Chebet", "faith.chebet@example.co.ke", "+254722000005", 14, 4, "Paul Chebet", "+254722000105"},
	}
	tenantRows := make([]*domain.Tenant, 0, len(tenants))
	for _, ts := range tenants {
		moveIn := month.AddDate(0, -ts.movedInAgo, 0)
		t := &domain.Tenant{
			UnitID:                f.UnitIDs[ts.unit],
			Name:                  ts.name,
			Email:                 ts.email,
			PhoneNumber:           ts.phone,
			MoveInDate:            moveIn,
			LeaseStartDate:        moveIn,
			LeaseEndDate:          moveIn.AddDate(1, 0, 0),
			EmergencyContactName:  ts.contact,
			EmergencyContactPhone: ts.contactTel,
			CreatedAt:             moveIn,
			UpdatedAt:             moveIn,
		}
		if ts.movedOutAgo > 0 {
			out := month.AddDate(0, -ts.movedOutAgo, 0)
			t.MoveOutDate = &out
		}
		id, err := st.Tenants.CreateTenant(ctx, t)
		if err != nil {
			return nil, fmt.Errorf("failed to seed tenant %s: %w", ts.name, err)
		}
		f.TenantIDs = append(f.TenantIDs, id)
		tenantRows = append(tenantRows, t)

		if t.IsActive() {
			u := unitRows[ts.unit]
			tid := t.ID
			u.Status = domain.UnitOccupied
			u.TenantID = &tid
			u.TenantName = t.Name
			if err := st.Units.UpdateUnit(ctx, u); err != nil {
				return nil, fmt.Errorf("failed to occupy unit %s: %w", u.UnitNumber, err)
			}
		}
	}

	// Six months of rent for the active tenants; the current month is
	// settled for some, pending for one and missing for the rest.
	for ti, t := range tenantRows {
		if !t.IsActive() {
			continue
		}
		rent := unitRows[tenants[ti].unit].RentAmount
		for ago := 5; ago >= 0; ago-- {
			paidOn := month.AddDate(0, -ago, 2+ti)
			if paidOn.Before(t.MoveInDate) {
				continue
			}
			if paidOn.After(now) {
				paidOn = now
			}
			status := domain.PaymentPaid
			switch {
			case ago == 0 && ti == 1:
				status = domain.PaymentPending
			case ago == 0 && ti >= 2:
				continue
			case ago == 2 && ti == 2:
				status = domain.PaymentFailed
			}
			method := domain.PaymentMethodMpesa
			phone := t.PhoneNumber
			if ti%2 == 1 {
				method, phone = domain.PaymentMethodBankTransfer, ""
			}
			p := &domain.Payment{
				TenantID:             t.ID,
				UnitID:               t.UnitID,
				Amount:               rent,
				PaymentDate:          paidOn,
				PaymentMethod:        method,
				Status:               status,
				TransactionReference: fmt.Sprintf("SEED-%d-%s", t.ID, paidOn.Format("200601")),
				PhoneNumber:          phone,
				CreatedAt:            paidOn,
				UpdatedAt:            paidOn,
			}
			id, err := st.Payments.CreatePayment(ctx, p)
			if err != nil {
				return nil, fmt.Errorf("failed to seed payment: %w", err)
			}
			f.PaymentIDs = append(f.PaymentIDs, id)
			if status == domain.PaymentPaid {
				r := &domain.Receipt{
					PaymentID:     id,
					ReceiptNumber: fmt.Sprintf("RCT-%s-%d", paidOn.Format("200601"), id),
					Amount:        p.Amount,
					IssuedAt:      paidOn,
				}
				if _, err := st.Receipts.CreateReceipt(ctx, r); err != nil {
					return nil, fmt.Errorf("failed to seed receipt: %w", err)
				}
			}
		}
	}

	requests := []domain.MaintenanceRequest{
		{TenantID: tenantRows[0].ID, UnitID: tenantRows[0].UnitID, Title: "Leaking kitchen sink", Description: "Water drips under the sink cabinet.", Priority: domain.PriorityHigh, Status: domain.MaintenancePending, Images: []string{"sink.jpg"}},
		{TenantID: tenantRows[0].ID, UnitID: tenantRows[0].UnitID, Title: "Broken window latch", Description: "Bedroom window does not lock.", Priority: domain.PriorityMedium, Status: domain.MaintenanceCompleted, Cost: 3500},
		{TenantID: tenantRows[1].ID, UnitID: tenantRows[1].UnitID, Title: "No hot water", Description: "Shower heater trips the breaker.", Priority: domain.PriorityEmergency, Status: domain.MaintenanceInProgress, Cost: 8000},
		{TenantID: tenantRows[2].ID, UnitID: tenantRows[2].UnitID, Title: "Paint peeling", Description: "Living room wall paint is peeling.", Priority: domain.PriorityLow, Status: domain.MaintenancePending},
		{TenantID: tenantRows[3].ID, UnitID: tenantRows[3].UnitID, Title: "Blocked drain", Description: "Bathroom drain is slow.", Priority: domain.PriorityMedium, Status: domain.MaintenanceCancelled},
	}
	for i := range requests {
		r := requests[i]
		r.CreatedAt = month.AddDate(0, -(i % 3), 3+i)
		if r.CreatedAt.After(now) {
			r.CreatedAt = month
		}
		r.UpdatedAt = r.CreatedAt
		if r.Images == nil {
			r.Images = []string{}
		}
		r.Comments = []domain.MaintenanceComment{}
		if r.Status == domain.MaintenanceCompleted {
			done := r.CreatedAt.Add(48 * time.Hour)
			r.CompletedAt = &done
			r.UpdatedAt = done
		}
		id, err := st.Maintenance.CreateMaintenanceRequest(ctx, &r)
		if err != nil {
			return nil, fmt.Errorf("failed to seed maintenance request: %w", err)
		}
		f.RequestIDs = append(f.RequestIDs, id)
	}

	notes := []domain.Notification{
		{RecipientID: f.LandlordID, RecipientType: domain.RecipientLandlord, Message: "New high priority maintenance request from Jane Wanjiku (unit A1): Leaking kitchen sink"},
		{RecipientID: tenantRows[0].ID, RecipientType: domain.RecipientTenant, Message: "Welcome to DigiPlot. Your lease details are available in your profile."},
	}
	for i := range notes {
		n := notes[i]
		n.CreatedAt = month
		if _, err := st.Notifications.CreateNotification(ctx, &n); err != nil {
			return nil, fmt.Errorf("failed to seed notification: %w", err)
		}
	}
	return f, nil
}
