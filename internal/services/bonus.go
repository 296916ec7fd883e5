package services

import (
	"context"
	"log"

	"workshop/internal/datastore"
	"workshop/internal/models"

	weightedrand "github.com/mroth/weightedrand/v2"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

// ServiceBonus resolves character perks into concrete spark amounts.
type ServiceBonus struct {
	container  *do.Injector
	postgresDB *bun.DB
}

func NewServiceBonus(container *do.Injector) (*ServiceBonus, error) {
	postgresDB, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	return &ServiceBonus{container, postgresDB}, nil
}

func (service *ServiceBonus) characterOf(ctx context.Context, user *models.User) *models.Character {
	if user == nil || user.CharacterID == nil {
		return nil
	}

	character, err := datastore.FindCharacterByID(ctx, service.postgresDB, *user.CharacterID)
	if err != nil {
		return nil
	}
	return character
}

// QuizReward applies the character's percent perk on top of the base reward.
// Other perk kinds do not change quiz money.
func (service *ServiceBonus) QuizReward(ctx context.Context, user *models.User, base float64) float64 {
	character := service.characterOf(ctx, user)
	if character == nil || character.BonusType != models.BonusPercent {
		return base
	}

	percent, _ := models.ParseBonusRange(character.BonusValue)
	return base * (1 + percent/100)
}

// RollGift draws a surprise amount for gift-type characters. Small gifts are
// common, the full range rare.
func (service *ServiceBonus) RollGift(ctx context.Context, user *models.User) float64 {
	character := service.characterOf(ctx, user)
	if character == nil {
		return 0
	}
	if character.BonusType != models.BonusRandomGift && character.BonusType != models.BonusWeeklySurprise {
		return 0
	}

	min, max := models.ParseBonusRange(character.BonusValue)
	if max <= 0 {
		return 0
	}

	chooser, err := weightedrand.NewChooser(
		weightedrand.NewChoice(min, 60),
		weightedrand.NewChoice((min+max)/2, 30),
		weightedrand.NewChoice(max, 10),
	)
	if err != nil {
		log.Println("weightedrand:", err)
		return min
	}

	return chooser.Pick()
}
