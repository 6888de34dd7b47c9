package service_test

import (
	"testing"

	"sprout/internal/domain"
	"sprout/internal/models"
	"sprout/pkg/economy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func metaFor(split economy.PotSplit) string {
	return economy.MarshalPotSplit(split)
}

func TestSavedTotal_ReplaysLedger(t *testing.T) {
	f := newFixture(t)
	f.earn(t, 400, metaFor(economy.PotSplit{Spend: 200, Save: 120, Donate: 80}))
	f.earn(t, 100, metaFor(economy.PotSplit{Spend: 50, Save: 30, Donate: 20}))
	// a SPEND transaction pulls its SAVE portion back out
	require.NoError(t, f.ledger.Append(&models.LedgerTransaction{
		ParentID:    f.parent.ID,
		WalletID:    f.wallet.ID,
		Type:        domain.TxTypeSpend,
		AmountCents: 100,
		Metadata:    metaFor(economy.PotSplit{Spend: 70, Save: 30}),
	}))

	total, err := f.goalSvc.SavedTotal(f.parent.ID, f.child.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(120+30-30), total)
}

func TestSavedTotal_SkipsZeroSaveAndMalformedMetadata(t *testing.T) {
	f := newFixture(t)
	f.earn(t, 100, metaFor(economy.PotSplit{Spend: 100})) // no SAVE portion
	f.earn(t, 100, "{this is not json")                   // degrades to zeros
	f.earn(t, 100, metaFor(economy.PotSplit{Spend: 50, Save: 50}))

	total, err := f.goalSvc.SavedTotal(f.parent.ID, f.child.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(50), total)
}

func TestSavedTotal_Idempotent(t *testing.T) {
	f := newFixture(t)
	f.earn(t, 1000, metaFor(economy.PotSplit{Spend: 500, Save: 300, Donate: 200}))

	first, err := f.goalSvc.SavedTotal(f.parent.ID, f.child.ID)
	require.NoError(t, err)
	second, err := f.goalSvc.SavedTotal(f.parent.ID, f.child.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSavedTotal_NoWallet(t *testing.T) {
	f := newFixture(t)
	other := &models.Child{ParentID: f.parent.ID, Name: "NoWallet"}
	require.NoError(t, f.db.Create(other).Error)

	_, err := f.goalSvc.SavedTotal(f.parent.ID, other.ID)
	assert.Error(t, err)
}

func TestSyncLockedGoals_UnlocksIndependently(t *testing.T) {
	f := newFixture(t)
	// saved total of 300 covers both smaller goals in one call; the
	// goals are not depleted sequentially
	f.earn(t, 1000, metaFor(economy.PotSplit{Spend: 500, Save: 300, Donate: 200}))

	mkGoal := func(name string, target int64) *models.SavingGoal {
		g := &models.SavingGoal{
			ParentID: f.parent.ID, ChildID: f.child.ID,
			Name: name, TargetCents: target, IsLocked: true,
		}
		require.NoError(t, f.goalRepo.Create(g))
		return g
	}
	small := mkGoal("bike bell", 200)
	medium := mkGoal("book", 300)
	big := mkGoal("bike", 5000)

	unlocked, err := f.goalSvc.SyncLockedGoals(f.parent.ID, f.child.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{small.ID, medium.ID}, unlocked)

	goals, err := f.goalRepo.ListByChild(f.parent.ID, f.child.ID)
	require.NoError(t, err)
	byID := map[uint]bool{}
	for _, g := range goals {
		byID[g.ID] = g.IsLocked
	}
	assert.False(t, byID[small.ID])
	assert.False(t, byID[medium.ID])
	assert.True(t, byID[big.ID])
}

func TestSyncLockedGoals_SecondCallUnlocksNothing(t *testing.T) {
	f := newFixture(t)
	f.earn(t, 1000, metaFor(economy.PotSplit{Spend: 500, Save: 300, Donate: 200}))
	g := &models.SavingGoal{
		ParentID: f.parent.ID, ChildID: f.child.ID,
		Name: "book", TargetCents: 300, IsLocked: true,
	}
	require.NoError(t, f.goalRepo.Create(g))

	first, err := f.goalSvc.SyncLockedGoals(f.parent.ID, f.child.ID)
	require.NoError(t, err)
	assert.Len(t, first, 1)

	second, err := f.goalSvc.SyncLockedGoals(f.parent.ID, f.child.ID)
	require.NoError(t, err)
	assert.Empty(t, second)
}

func TestActiveGoalProgress(t *testing.T) {
	f := newFixture(t)
	f.earn(t, 1000, metaFor(economy.PotSplit{Spend: 500, Save: 300, Donate: 200}))
	g := &models.SavingGoal{
		ParentID: f.parent.ID, ChildID: f.child.ID,
		Name: "bike", TargetCents: 1000, IsLocked: true,
	}
	require.NoError(t, f.goalRepo.Create(g))

	progress, err := f.goalSvc.ActiveGoalProgress(f.parent.ID, f.child.ID)
	require.NoError(t, err)
	assert.Equal(t, 30, progress)
}

func TestActiveGoalProgress_NegativeSavedTotalClampsToZero(t *testing.T) {
	f := newFixture(t)
	// SPEND-heavy history drives the saved total below zero
	require.NoError(t, f.ledger.Append(&models.LedgerTransaction{
		ParentID:    f.parent.ID,
		WalletID:    f.wallet.ID,
		Type:        domain.TxTypeSpend,
		AmountCents: 200,
		Metadata:    metaFor(economy.PotSplit{Spend: 100, Save: 100}),
	}))
	g := &models.SavingGoal{
		ParentID: f.parent.ID, ChildID: f.child.ID,
		Name: "bike", TargetCents: 1000, IsLocked: true,
	}
	require.NoError(t, f.goalRepo.Create(g))

	progress, err := f.goalSvc.ActiveGoalProgress(f.parent.ID, f.child.ID)
	require.NoError(t, err)
	assert.Zero(t, progress)
}

func TestPotBalances(t *testing.T) {
	f := newFixture(t)
	f.earn(t, 400, metaFor(economy.PotSplit{Spend: 200, Save: 120, Donate: 80}))
	require.NoError(t, f.ledger.Append(&models.LedgerTransaction{
		ParentID:    f.parent.ID,
		WalletID:    f.wallet.ID,
		Type:        domain.TxTypeSpend,
		AmountCents: 50,
		Metadata:    metaFor(economy.PotSplit{Spend: 50}),
	}))

	balance, err := f.goalSvc.PotBalances(f.parent.ID, f.child.ID)
	require.NoError(t, err)
	assert.Equal(t, economy.PotSplit{Spend: 150, Save: 120, Donate: 80}, balance)
	assert.Equal(t, int64(350), balance.Total())
}
