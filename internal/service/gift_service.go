package service

import (
	"context"
	"errors"
	"fmt"

	"gifting_platform/internal/catalog"
	"gifting_platform/internal/domain"
	"gifting_platform/internal/levels"
	"gifting_platform/internal/logger"
	"gifting_platform/internal/notify"
	"gifting_platform/internal/repository"
	"gifting_platform/internal/settings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Validation failures surface before any balance is touched and are never
// auto-retried. ErrProcessingFailed wraps storage failures inside the atomic
// unit; nothing partial was committed, so retrying is safe when paired with
// an idempotency key.
var (
	ErrReceiverNotFound      = errors.New("receiver not found")
	ErrStreamNotFound        = errors.New("stream not found")
	ErrInvalidGiftDefinition = errors.New("invalid gift definition")
	ErrInvalidQuantity       = errors.New("invalid quantity")
	ErrInsufficientFunds     = repository.ErrInsufficientFunds
	ErrProcessingFailed      = errors.New("gift processing failed")
)

// SendGiftInput is one send-gift request.
type SendGiftInput struct {
	SenderID       int64
	ReceiverID     int64
	StreamID       *int64
	GiftCode       string
	Quantity       int64
	Message        string
	Anonymous      bool
	Public         bool
	IdempotencyKey string
}

// SendGiftResult is returned synchronously on commit (or replay).
type SendGiftResult struct {
	Transaction      *domain.GiftTransaction
	LevelUp          *domain.LevelUpEvent
	SenderCoins      int64
	ReceiverDiamonds int64
	Replayed         bool
}

// GiftService orchestrates the atomic send-gift workflow: validation,
// conversion, the all-or-nothing balance/XP mutation, and the post-commit
// level-up event.
type GiftService struct {
	db       *pgxpool.Pool
	catalog  *catalog.Resolver
	settings *settings.Provider
	levels   *levels.Engine
	notifier notify.Notifier

	users      *repository.UserRepository
	streams    *repository.StreamRepository
	balances   *repository.BalanceRepository
	giftTxs    *repository.GiftTxRepository
	ledger     *repository.LedgerRepository
	commission *repository.CommissionRepository
	progress   *repository.ProgressRepository
}

func NewGiftService(db *pgxpool.Pool, resolver *catalog.Resolver, provider *settings.Provider, engine *levels.Engine, notifier notify.Notifier) *GiftService {
	if notifier == nil {
		notifier = notify.NoopNotifier{}
	}
	return &GiftService{
		db:         db,
		catalog:    resolver,
		settings:   provider,
		levels:     engine,
		notifier:   notifier,
		users:      repository.NewUserRepository(db),
		streams:    repository.NewStreamRepository(db),
		balances:   repository.NewBalanceRepository(db),
		giftTxs:    repository.NewGiftTxRepository(db),
		ledger:     repository.NewLedgerRepository(db),
		commission: repository.NewCommissionRepository(db),
		progress:   repository.NewProgressRepository(db),
	}
}

// SendGift runs the full gift workflow. Any failure inside the atomic unit
// rolls back every mutation; the level-up notification is emitted only after
// a successful commit and its failure never undoes the gift.
func (s *GiftService) SendGift(ctx context.Context, in SendGiftInput) (*SendGiftResult, error) {
	if in.Quantity <= 0 {
		giftsProcessed.WithLabelValues("validation_failed").Inc()
		return nil, ErrInvalidQuantity
	}

	def, err := s.catalog.Resolve(ctx, in.GiftCode)
	if err != nil {
		giftsProcessed.WithLabelValues("validation_failed").Inc()
		return nil, ErrInvalidGiftDefinition
	}

	exists, err := s.users.Exists(ctx, in.ReceiverID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProcessingFailed, err)
	}
	if !exists {
		giftsProcessed.WithLabelValues("validation_failed").Inc()
		return nil, ErrReceiverNotFound
	}

	if in.StreamID != nil {
		ok, err := s.streams.Exists(ctx, *in.StreamID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrProcessingFailed, err)
		}
		if !ok {
			giftsProcessed.WithLabelValues("validation_failed").Inc()
			return nil, ErrStreamNotFound
		}
	}

	if in.IdempotencyKey != "" {
		if prior, err := s.giftTxs.GetByIdempotencyKey(ctx, in.IdempotencyKey); err == nil {
			giftsProcessed.WithLabelValues("replayed").Inc()
			return &SendGiftResult{Transaction: prior, Replayed: true}, nil
		} else if !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %v", ErrProcessingFailed, err)
		}
	}

	eco := s.settings.Economy(ctx)
	lv := s.settings.Levels(ctx)
	table := s.levels.Table(ctx)
	amounts := computeAmounts(def, in.Quantity, eco, lv)

	result, err := s.commit(ctx, in, def, eco, amounts, lv, table)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrInsufficientFunds):
			giftsProcessed.WithLabelValues("insufficient_funds").Inc()
		case errors.Is(err, repository.ErrDuplicateKey):
			// lost a race with a concurrent send carrying the same key
			if prior, lookupErr := s.giftTxs.GetByIdempotencyKey(ctx, in.IdempotencyKey); lookupErr == nil {
				giftsProcessed.WithLabelValues("replayed").Inc()
				return &SendGiftResult{Transaction: prior, Replayed: true}, nil
			}
			giftsProcessed.WithLabelValues("error").Inc()
		default:
			giftsProcessed.WithLabelValues("error").Inc()
		}
		return nil, err
	}

	giftsProcessed.WithLabelValues("committed").Inc()
	giftCoinsSpent.Add(float64(amounts.TotalCoins))
	commissionMinorUnits.Add(float64(amounts.CommissionMinorUnits))

	if result.LevelUp != nil {
		levelUps.Inc()
		if err := s.notifier.LevelUp(ctx, *result.LevelUp); err != nil {
			logger.Warn("gift: level-up notification failed",
				"user_id", result.LevelUp.UserID, "level", result.LevelUp.Level, "error", err)
		}
	}
	return result, nil
}

// commit is the atomic unit: every mutation below happens in one database
// transaction or not at all.
func (s *GiftService) commit(ctx context.Context, in SendGiftInput, def domain.GiftDefinition, eco domain.EconomySettings, amounts giftAmounts, lv domain.LevelSettings, table *levels.Table) (*SendGiftResult, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProcessingFailed, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Ordered locks on both users; the receiver lock also serializes XP,
	// level and reward claims for that user.
	if err := s.balances.LockUsers(ctx, tx, in.SenderID, in.ReceiverID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrReceiverNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrProcessingFailed, err)
	}

	gt := &domain.GiftTransaction{
		SenderID:             in.SenderID,
		ReceiverID:           in.ReceiverID,
		StreamID:             in.StreamID,
		GiftCode:             def.Code,
		UnitValueCoins:       def.BaseValueCoins,
		Quantity:             in.Quantity,
		TotalCoins:           amounts.TotalCoins,
		Message:              in.Message,
		Anonymous:            in.Anonymous,
		Public:               in.Public,
		CommissionMinorUnits: amounts.CommissionMinorUnits,
		ReceiverDiamonds:     amounts.ReceiverDiamonds,
		XPAwarded:            amounts.XPAward,
		Economy: domain.EconomySnapshot{
			Rate:           eco.CoinToMinorUnitRate,
			CommissionRate: eco.CommissionRate,
		},
		IdempotencyKey: in.IdempotencyKey,
	}
	if err := s.giftTxs.CreateTx(ctx, tx, gt); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrProcessingFailed, err)
	}

	senderCoins, err := s.balances.DebitTx(ctx, tx, in.SenderID, domain.CurrencyCoins, amounts.TotalCoins)
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientFunds) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrProcessingFailed, err)
	}
	if err := s.ledger.CreateTx(ctx, tx, &domain.LedgerEntry{
		UserID:   in.SenderID,
		Type:     domain.EntryGiftOut,
		Currency: domain.CurrencyCoins,
		Amount:   -amounts.TotalCoins,
		GiftTxID: &gt.ID,
		Meta:     map[string]interface{}{"gift_code": def.Code, "quantity": in.Quantity},
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProcessingFailed, err)
	}

	receiverDiamonds := int64(0)
	if amounts.ReceiverDiamonds > 0 {
		receiverDiamonds, err = s.balances.CreditTx(ctx, tx, in.ReceiverID, domain.CurrencyDiamonds, amounts.ReceiverDiamonds)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrProcessingFailed, err)
		}
		if err := s.ledger.CreateTx(ctx, tx, &domain.LedgerEntry{
			UserID:   in.ReceiverID,
			Type:     domain.EntryGiftIn,
			Currency: domain.CurrencyDiamonds,
			Amount:   amounts.ReceiverDiamonds,
			GiftTxID: &gt.ID,
			Meta:     map[string]interface{}{"gift_code": def.Code, "quantity": in.Quantity},
		}); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrProcessingFailed, err)
		}
	}

	if amounts.CommissionMinorUnits > 0 {
		if err := s.commission.AddTx(ctx, tx, repository.CommissionCounter, amounts.CommissionMinorUnits); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrProcessingFailed, err)
		}
	}

	progress, err := s.progress.AddXPTx(ctx, tx, in.ReceiverID, amounts.XPAward)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProcessingFailed, err)
	}

	var levelUp *domain.LevelUpEvent
	info := table.LevelFor(progress.XP)
	if info.Level > progress.Level {
		if err := s.progress.SetLevelTx(ctx, tx, in.ReceiverID, info.Level); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrProcessingFailed, err)
		}
		if err := s.applyLevelReward(ctx, tx, gt, in.ReceiverID, info.Level, lv); err != nil {
			return nil, err
		}
		levelUp = &domain.LevelUpEvent{
			UserID:   in.ReceiverID,
			Level:    info.Level,
			Source:   "gift",
			GiftCode: def.Code,
			Quantity: in.Quantity,
		}
	}

	if err := s.applyBonuses(ctx, tx, gt, in.ReceiverID, def); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProcessingFailed, err)
	}

	return &SendGiftResult{
		Transaction:      gt,
		LevelUp:          levelUp,
		SenderCoins:      senderCoins,
		ReceiverDiamonds: receiverDiamonds,
	}, nil
}

// applyLevelReward grants levelRewards[level] as synthetic ledger entries,
// at most once per (user, level) even under concurrent duplicate checks.
func (s *GiftService) applyLevelReward(ctx context.Context, tx pgx.Tx, gt *domain.GiftTransaction, userID int64, level int, lv domain.LevelSettings) error {
	reward := lv.LevelRewards[level]
	if reward == nil || (reward.Diamonds <= 0 && reward.Coins <= 0) {
		return nil
	}

	claimed, err := s.progress.ClaimLevelRewardTx(ctx, tx, userID, level)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProcessingFailed, err)
	}
	if !claimed {
		return nil
	}

	meta := map[string]interface{}{"level": level}
	if reward.Diamonds > 0 {
		if _, err := s.balances.CreditTx(ctx, tx, userID, domain.CurrencyDiamonds, reward.Diamonds); err != nil {
			return fmt.Errorf("%w: %v", ErrProcessingFailed, err)
		}
		if err := s.ledger.CreateTx(ctx, tx, &domain.LedgerEntry{
			UserID: userID, Type: domain.EntryLevelReward, Currency: domain.CurrencyDiamonds,
			Amount: reward.Diamonds, GiftTxID: &gt.ID, Meta: meta,
		}); err != nil {
			return fmt.Errorf("%w: %v", ErrProcessingFailed, err)
		}
	}
	if reward.Coins > 0 {
		if _, err := s.balances.CreditTx(ctx, tx, userID, domain.CurrencyCoins, reward.Coins); err != nil {
			return fmt.Errorf("%w: %v", ErrProcessingFailed, err)
		}
		if err := s.ledger.CreateTx(ctx, tx, &domain.LedgerEntry{
			UserID: userID, Type: domain.EntryLevelReward, Currency: domain.CurrencyCoins,
			Amount: reward.Coins, GiftTxID: &gt.ID, Meta: meta,
		}); err != nil {
			return fmt.Errorf("%w: %v", ErrProcessingFailed, err)
		}
	}
	return nil
}

// applyBonuses credits definition-level bonus grants as entries tagged with
// the originating transaction.
func (s *GiftService) applyBonuses(ctx context.Context, tx pgx.Tx, gt *domain.GiftTransaction, userID int64, def domain.GiftDefinition) error {
	meta := map[string]interface{}{"gift_code": def.Code}
	if def.BonusDiamonds > 0 {
		if _, err := s.balances.CreditTx(ctx, tx, userID, domain.CurrencyDiamonds, def.BonusDiamonds); err != nil {
			return fmt.Errorf("%w: %v", ErrProcessingFailed, err)
		}
		if err := s.ledger.CreateTx(ctx, tx, &domain.LedgerEntry{
			UserID: userID, Type: domain.EntryGiftBonus, Currency: domain.CurrencyDiamonds,
			Amount: def.BonusDiamonds, GiftTxID: &gt.ID, Meta: meta,
		}); err != nil {
			return fmt.Errorf("%w: %v", ErrProcessingFailed, err)
		}
	}
	if def.BonusCoins > 0 {
		if _, err := s.balances.CreditTx(ctx, tx, userID, domain.CurrencyCoins, def.BonusCoins); err != nil {
			return fmt.Errorf("%w: %v", ErrProcessingFailed, err)
		}
		if err := s.ledger.CreateTx(ctx, tx, &domain.LedgerEntry{
			UserID: userID, Type: domain.EntryGiftBonus, Currency: domain.CurrencyCoins,
			Amount: def.BonusCoins, GiftTxID: &gt.ID, Meta: meta,
		}); err != nil {
			return fmt.Errorf("%w: %v", ErrProcessingFailed, err)
		}
	}
	if def.Badge != "" {
		if _, err := s.progress.GrantBadgeTx(ctx, tx, userID, def.Badge, gt.ID); err != nil {
			return fmt.Errorf("%w: %v", ErrProcessingFailed, err)
		}
	}
	return nil
}
