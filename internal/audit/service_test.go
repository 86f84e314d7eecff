package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PrizeGrid_Go/internal/domain"
	"github.com/osse101/PrizeGrid_Go/internal/event"
)

var auditDay = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func ledgerWith(sales, paid string) domain.BudgetLedger {
	return domain.BudgetLedger{
		GameType:        "grid-050",
		Day:             auditDay,
		TotalSales:      d(sales),
		TotalPrizesPaid: d(paid),
		PrizeBudgetPct:  d("0.20"),
		AlertLevel:      domain.AlertNormal,
	}
}

func newTestService(repo *MockAuditRepo, emergency *MockEmergencyRepo, pub *recordingPublisher) Service {
	cfg := DefaultConfig()
	cfg.Now = func() time.Time { return auditDay.Add(10 * time.Hour) }
	return NewService(repo, emergency, pub, cfg)
}

func TestSeverity(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		discrepancy string
		want        domain.AlertLevel
	}{
		{"0.02", domain.AlertWarning},
		{"100", domain.AlertWarning},
		{"100.01", domain.AlertCritical},
		{"1000", domain.AlertCritical},
		{"1000.01", domain.AlertEmergency},
	}
	for _, tt := range tests {
		t.Run(tt.discrepancy, func(t *testing.T) {
			assert.Equal(t, tt.want, cfg.Severity(d(tt.discrepancy)))
		})
	}
}

// snapshot pairs l with 49 settled rounds and the given sums
func snapshot(l domain.BudgetLedger, bets, won, walletNet string) *domain.ReconcileSnapshot {
	return &domain.ReconcileSnapshot{
		Ledger:    l,
		Rounds:    domain.RoundTotals{Rounds: 49, Bets: d(bets), WonAmount: d(won)},
		WalletNet: d(walletNet),
	}
}

func expectNoOpenAlert(repo *MockAuditRepo, check string) {
	repo.On("FindUnresolvedAlert", mock.Anything, "grid-050", auditDay, check).Return(nil, domain.ErrAlertNotFound)
}

func TestReconcile_BalancedLedgerRaisesNothing(t *testing.T) {
	l := ledgerWith("24.50", "2.00")
	repo := new(MockAuditRepo)
	repo.On("ListActiveLedgers", mock.Anything, auditDay).Return([]domain.BudgetLedger{l}, nil)
	repo.On("ReadReconcileSnapshot", mock.Anything, "grid-050", auditDay).Return(snapshot(l, "24.50", "2.00", "-22.50"), nil)
	pub := &recordingPublisher{}

	alerts, err := newTestService(repo, new(MockEmergencyRepo), pub).Reconcile(context.Background(), auditDay.Add(5*time.Hour))

	require.NoError(t, err)
	assert.Empty(t, alerts)
	assert.Empty(t, pub.events)
	repo.AssertNotCalled(t, "InsertAlert", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "FindUnresolvedAlert", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReconcile_WithinToleranceRaisesNothing(t *testing.T) {
	l := ledgerWith("24.50", "2.00")
	repo := new(MockAuditRepo)
	repo.On("ListActiveLedgers", mock.Anything, auditDay).Return([]domain.BudgetLedger{l}, nil)
	repo.On("ReadReconcileSnapshot", mock.Anything, "grid-050", auditDay).Return(snapshot(l, "24.51", "2.00", "-22.51"), nil)

	alerts, err := newTestService(repo, new(MockEmergencyRepo), &recordingPublisher{}).Reconcile(context.Background(), auditDay)

	require.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestReconcile_ComparesSnapshotLedgerNotListedRow(t *testing.T) {
	// rounds settled between the listing and the snapshot read
	listed := ledgerWith("20.00", "1.00")
	current := ledgerWith("24.50", "2.00")
	repo := new(MockAuditRepo)
	repo.On("ListActiveLedgers", mock.Anything, auditDay).Return([]domain.BudgetLedger{listed}, nil)
	repo.On("ReadReconcileSnapshot", mock.Anything, "grid-050", auditDay).Return(snapshot(current, "24.50", "2.00", "-22.50"), nil)
	pub := &recordingPublisher{}

	alerts, err := newTestService(repo, new(MockEmergencyRepo), pub).Reconcile(context.Background(), auditDay)

	require.NoError(t, err)
	assert.Empty(t, alerts)
	assert.Empty(t, pub.events)
	repo.AssertNotCalled(t, "InsertAlert", mock.Anything, mock.Anything)
}

func TestReconcile_Severities(t *testing.T) {
	tests := []struct {
		name         string
		paidInLedger string
		want         domain.AlertLevel
		wantEvents   []event.Type
	}{
		{name: "warning", paidInLedger: "2.50", want: domain.AlertWarning, wantEvents: []event.Type{event.AuditAlert}},
		{name: "critical", paidInLedger: "150.00", want: domain.AlertCritical, wantEvents: []event.Type{event.AuditAlert}},
		{name: "emergency", paidInLedger: "1500.00", want: domain.AlertEmergency, wantEvents: []event.Type{event.AuditAlert, event.EmergencyEngaged}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := ledgerWith("24.50", tt.paidInLedger)
			repo := new(MockAuditRepo)
			emergency := new(MockEmergencyRepo)
			repo.On("ListActiveLedgers", mock.Anything, auditDay).Return([]domain.BudgetLedger{l}, nil)
			repo.On("ReadReconcileSnapshot", mock.Anything, "grid-050", auditDay).Return(snapshot(l, "24.50", "2.00", "-22.50"), nil)
			expectNoOpenAlert(repo, CheckPrizes)
			repo.On("InsertAlert", mock.Anything, mock.AnythingOfType("*domain.AuditAlert")).Return(nil)
			repo.On("RaiseLedgerAlertLevel", mock.Anything, "grid-050", auditDay, tt.want).Return(nil)
			if tt.want == domain.AlertEmergency {
				emergency.On("SetEmergencyStop", mock.Anything, "grid-050", mock.MatchedBy(func(reason string) bool {
					return len(reason) > len(ReasonAuditEmergency) && reason[:len(ReasonAuditEmergency)] == ReasonAuditEmergency
				})).Return(nil)
			}
			pub := &recordingPublisher{}

			alerts, err := newTestService(repo, emergency, pub).Reconcile(context.Background(), auditDay)

			require.NoError(t, err)
			require.Len(t, alerts, 1)
			alert := alerts[0]
			assert.Equal(t, tt.want, alert.Severity)
			assert.Equal(t, "grid-050", alert.GameType)
			assert.Equal(t, CheckPrizes, alert.Check)
			assert.True(t, alert.Expected.Equal(d(tt.paidInLedger)))
			assert.True(t, alert.Actual.Equal(d("2.00")))
			assert.True(t, alert.Discrepancy.Equal(d(tt.paidInLedger).Sub(d("2.00"))))
			assert.Contains(t, alert.Description, CheckPrizes)
			assert.NotEqual(t, uuid.Nil, alert.ID)
			assert.Equal(t, tt.wantEvents, pub.types())

			repo.AssertExpectations(t)
			emergency.AssertExpectations(t)
		})
	}
}

func TestReconcile_WalletMismatchOnly(t *testing.T) {
	l := ledgerWith("24.50", "2.00")
	repo := new(MockAuditRepo)
	repo.On("ListActiveLedgers", mock.Anything, auditDay).Return([]domain.BudgetLedger{l}, nil)
	// a credit went missing
	repo.On("ReadReconcileSnapshot", mock.Anything, "grid-050", auditDay).Return(snapshot(l, "24.50", "2.00", "-24.50"), nil)
	expectNoOpenAlert(repo, CheckWallets)
	repo.On("InsertAlert", mock.Anything, mock.Anything).Return(nil)
	repo.On("RaiseLedgerAlertLevel", mock.Anything, "grid-050", auditDay, domain.AlertWarning).Return(nil)

	alerts, err := newTestService(repo, new(MockEmergencyRepo), &recordingPublisher{}).Reconcile(context.Background(), auditDay)

	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, CheckWallets, alerts[0].Check)
	assert.Contains(t, alerts[0].Description, CheckWallets)
	assert.NotContains(t, alerts[0].Description, CheckSales)
	assert.True(t, alerts[0].Discrepancy.Equal(d("2")))
}

func TestReconcile_OpenAlertIsNotRepeated(t *testing.T) {
	tests := []struct {
		name string
		open domain.AlertLevel
	}{
		{name: "same severity", open: domain.AlertWarning},
		{name: "higher severity open", open: domain.AlertCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := ledgerWith("24.50", "2.50")
			repo := new(MockAuditRepo)
			repo.On("ListActiveLedgers", mock.Anything, auditDay).Return([]domain.BudgetLedger{l}, nil)
			repo.On("ReadReconcileSnapshot", mock.Anything, "grid-050", auditDay).Return(snapshot(l, "24.50", "2.00", "-22.50"), nil)
			repo.On("FindUnresolvedAlert", mock.Anything, "grid-050", auditDay, CheckPrizes).
				Return(&domain.AuditAlert{ID: uuid.New(), GameType: "grid-050", Day: auditDay, Check: CheckPrizes, Severity: tt.open}, nil)
			pub := &recordingPublisher{}
			svc := newTestService(repo, new(MockEmergencyRepo), pub)

			// the job fires every interval while the drift persists
			for i := 0; i < 3; i++ {
				alerts, err := svc.Reconcile(context.Background(), auditDay)
				require.NoError(t, err)
				assert.Empty(t, alerts)
			}

			assert.Empty(t, pub.events)
			repo.AssertNotCalled(t, "InsertAlert", mock.Anything, mock.Anything)
			repo.AssertNotCalled(t, "RaiseLedgerAlertLevel", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestReconcile_EscalationRaisesNewAlert(t *testing.T) {
	l := ledgerWith("24.50", "150.00")
	repo := new(MockAuditRepo)
	repo.On("ListActiveLedgers", mock.Anything, auditDay).Return([]domain.BudgetLedger{l}, nil)
	repo.On("ReadReconcileSnapshot", mock.Anything, "grid-050", auditDay).Return(snapshot(l, "24.50", "2.00", "-22.50"), nil)
	repo.On("FindUnresolvedAlert", mock.Anything, "grid-050", auditDay, CheckPrizes).
		Return(&domain.AuditAlert{ID: uuid.New(), Check: CheckPrizes, Severity: domain.AlertWarning}, nil)
	repo.On("InsertAlert", mock.Anything, mock.AnythingOfType("*domain.AuditAlert")).Return(nil)
	repo.On("RaiseLedgerAlertLevel", mock.Anything, "grid-050", auditDay, domain.AlertCritical).Return(nil)
	pub := &recordingPublisher{}

	alerts, err := newTestService(repo, new(MockEmergencyRepo), pub).Reconcile(context.Background(), auditDay)

	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, domain.AlertCritical, alerts[0].Severity)
	assert.Equal(t, []event.Type{event.AuditAlert}, pub.types())
	repo.AssertExpectations(t)
}

func TestReconcile_ContinuesPastFailingLedger(t *testing.T) {
	broken := ledgerWith("1.00", "0")
	broken.GameType = "broken"
	l := ledgerWith("24.50", "2.00")
	repo := new(MockAuditRepo)
	repo.On("ListActiveLedgers", mock.Anything, auditDay).Return([]domain.BudgetLedger{broken, l}, nil)
	repo.On("ReadReconcileSnapshot", mock.Anything, "broken", auditDay).Return(nil, errors.New("db down"))
	repo.On("ReadReconcileSnapshot", mock.Anything, "grid-050", auditDay).Return(snapshot(l, "24.50", "2.00", "-22.50"), nil)

	alerts, err := newTestService(repo, new(MockEmergencyRepo), &recordingPublisher{}).Reconcile(context.Background(), auditDay)

	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgReadSnapshotFailed)
	assert.Empty(t, alerts)
	repo.AssertCalled(t, "ReadReconcileSnapshot", mock.Anything, "grid-050", auditDay)
}

func TestReconcile_OpenAlertLookupFails(t *testing.T) {
	l := ledgerWith("24.50", "2.50")
	repo := new(MockAuditRepo)
	repo.On("ListActiveLedgers", mock.Anything, auditDay).Return([]domain.BudgetLedger{l}, nil)
	repo.On("ReadReconcileSnapshot", mock.Anything, "grid-050", auditDay).Return(snapshot(l, "24.50", "2.00", "-22.50"), nil)
	repo.On("FindUnresolvedAlert", mock.Anything, "grid-050", auditDay, CheckPrizes).Return(nil, errors.New("db down"))

	alerts, err := newTestService(repo, new(MockEmergencyRepo), &recordingPublisher{}).Reconcile(context.Background(), auditDay)

	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgFindAlertFailed)
	assert.Empty(t, alerts)
	repo.AssertNotCalled(t, "InsertAlert", mock.Anything, mock.Anything)
}

func TestEmergencyStop_EngageAndClear(t *testing.T) {
	emergency := new(MockEmergencyRepo)
	emergency.On("SetEmergencyStop", mock.Anything, "grid-050", "manual").Return(nil)
	emergency.On("ClearEmergencyStop", mock.Anything, "grid-050").Return(nil)
	pub := &recordingPublisher{}
	svc := newTestService(new(MockAuditRepo), emergency, pub)

	require.NoError(t, svc.EngageEmergencyStop(context.Background(), "grid-050", "manual"))
	require.NoError(t, svc.ClearEmergencyStop(context.Background(), "grid-050"))

	assert.Equal(t, []event.Type{event.EmergencyEngaged, event.EmergencyCleared}, pub.types())
	emergency.AssertExpectations(t)
}

func TestEmergencyStop_RequiresGameType(t *testing.T) {
	svc := newTestService(new(MockAuditRepo), new(MockEmergencyRepo), &recordingPublisher{})

	assert.Error(t, svc.EngageEmergencyStop(context.Background(), "", "manual"))
	assert.Error(t, svc.ClearEmergencyStop(context.Background(), ""))
}

func TestResolveAlert_NotFound(t *testing.T) {
	id := uuid.New()
	repo := new(MockAuditRepo)
	repo.On("ResolveAlert", mock.Anything, id).Return(domain.ErrAlertNotFound)
	svc := newTestService(repo, new(MockEmergencyRepo), &recordingPublisher{})

	err := svc.ResolveAlert(context.Background(), id)

	assert.ErrorIs(t, err, domain.ErrAlertNotFound)
}
