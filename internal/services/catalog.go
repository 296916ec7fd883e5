package services

import (
	"context"
	"errors"

	"workshop/internal/datastore"
	"workshop/internal/models"
	"workshop/internal/pkg/caching"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

// ServiceCatalog owns the admin-managed content: roles, characters, quizzes,
// marathons, shop items, channel posts and interactives. Public listings go
// through the cache; admin mutations invalidate it.
type ServiceCatalog struct {
	container  *do.Injector
	postgresDB *bun.DB
	cache      caching.Cache
}

func NewServiceCatalog(container *do.Injector) (*ServiceCatalog, error) {
	postgresDB, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	return &ServiceCatalog{container, postgresDB, cache}, nil
}

// --- roles ---

func (service *ServiceCatalog) GetActiveRoles(ctx context.Context) ([]*models.Role, error) {
	callback := func() ([]*models.Role, error) {
		return datastore.GetActiveRoles(ctx, service.postgresDB)
	}
	roles, err := caching.UseCache(ctx, service.cache, DBKeyRoles(), CACHE_TTL_5_MINS, callback)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	return roles, nil
}

func (service *ServiceCatalog) GetAllRoles(ctx context.Context) ([]*models.Role, error) {
	roles, err := datastore.GetAllRoles(ctx, service.postgresDB)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	for _, role := range roles {
		count, err := datastore.CountCharactersByRole(ctx, service.postgresDB, role.ID)
		if err == nil {
			role.CharacterCount = count
		}
	}
	return roles, nil
}

func (service *ServiceCatalog) CreateRole(ctx context.Context, role *models.Role) (*models.Role, error) {
	if role.Name == "" {
		return nil, errorx.Wrap(errors.New("role name required"), errorx.Validation)
	}
	role.Buttons = models.ValidCapabilities(role.Buttons)

	role, err := datastore.CreateRole(ctx, service.postgresDB, role)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	_ = service.cache.Delete(ctx, DBKeyRoles())
	return role, nil
}

func (service *ServiceCatalog) EditRole(ctx context.Context, role *models.Role) (*models.Role, error) {
	if role.Name == "" {
		return nil, errorx.Wrap(errors.New("role name required"), errorx.Validation)
	}
	if _, err := datastore.FindRoleByID(ctx, service.postgresDB, role.ID); err != nil {
		return nil, errorx.Wrap(errors.New("role not found"), errorx.NotExist)
	}
	role.Buttons = models.ValidCapabilities(role.Buttons)

	role, err := datastore.EditRole(ctx, service.postgresDB, role)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	_ = service.cache.Delete(ctx, DBKeyRoles())
	return role, nil
}

// DeleteRole refuses while characters still reference the role. Deactivate
// instead of deleting when history must be kept.
func (service *ServiceCatalog) DeleteRole(ctx context.Context, roleID int64) error {
	if _, err := datastore.FindRoleByID(ctx, service.postgresDB, roleID); err != nil {
		return errorx.Wrap(errors.New("role not found"), errorx.NotExist)
	}

	count, err := datastore.CountCharactersByRole(ctx, service.postgresDB, roleID)
	if err != nil {
		return errorx.Wrap(err, errorx.Service)
	}
	if count > 0 {
		return errorx.Wrap(ErrRoleHasCharacters, errorx.Invalid)
	}

	if err := datastore.DeleteRole(ctx, service.postgresDB, roleID); err != nil {
		return errorx.Wrap(err, errorx.Service)
	}

	_ = service.cache.Delete(ctx, DBKeyRoles())
	return nil
}

// --- characters ---

func (service *ServiceCatalog) GetActiveCharactersByRole(ctx context.Context, roleID int64) ([]*models.Character, error) {
	callback := func() ([]*models.Character, error) {
		return datastore.GetActiveCharactersByRole(ctx, service.postgresDB, roleID)
	}
	characters, err := caching.UseCache(ctx, service.cache, DBKeyCharacters(roleID), CACHE_TTL_5_MINS, callback)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	return characters, nil
}

func (service *ServiceCatalog) GetAllCharacters(ctx context.Context) ([]*models.Character, error) {
	characters, err := datastore.GetAllCharacters(ctx, service.postgresDB)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	return characters, nil
}

func (service *ServiceCatalog) validateCharacter(ctx context.Context, character *models.Character) error {
	if character.Name == "" {
		return errorx.Wrap(errors.New("character name required"), errorx.Validation)
	}
	if !character.BonusType.Valid() {
		return errorx.Wrap(errors.New("invalid bonus type"), errorx.Validation)
	}
	if _, err := datastore.FindRoleByID(ctx, service.postgresDB, character.RoleID); err != nil {
		return errorx.Wrap(errors.New("role not found"), errorx.NotExist)
	}
	return nil
}

func (service *ServiceCatalog) CreateCharacter(ctx context.Context, character *models.Character) (*models.Character, error) {
	if err := service.validateCharacter(ctx, character); err != nil {
		return nil, err
	}

	character, err := datastore.CreateCharacter(ctx, service.postgresDB, character)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	_ = service.cache.Delete(ctx, DBKeyCharacters(character.RoleID))
	return character, nil
}

func (service *ServiceCatalog) EditCharacter(ctx context.Context, character *models.Character) (*models.Character, error) {
	previous, err := datastore.FindCharacterByID(ctx, service.postgresDB, character.ID)
	if err != nil {
		return nil, errorx.Wrap(errors.New("character not found"), errorx.NotExist)
	}
	if err := service.validateCharacter(ctx, character); err != nil {
		return nil, err
	}

	character, err = datastore.EditCharacter(ctx, service.postgresDB, character)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	_ = service.cache.Delete(ctx, DBKeyCharacters(previous.RoleID))
	_ = service.cache.Delete(ctx, DBKeyCharacters(character.RoleID))
	return character, nil
}

// DeleteCharacter refuses while users still have the character picked.
func (service *ServiceCatalog) DeleteCharacter(ctx context.Context, characterID int64) error {
	character, err := datastore.FindCharacterByID(ctx, service.postgresDB, characterID)
	if err != nil {
		return errorx.Wrap(errors.New("character not found"), errorx.NotExist)
	}

	count, err := datastore.CountUsersByCharacter(ctx, service.postgresDB, characterID)
	if err != nil {
		return errorx.Wrap(err, errorx.Service)
	}
	if count > 0 {
		return errorx.Wrap(ErrCharacterInUse, errorx.Invalid)
	}

	if err := datastore.DeleteCharacter(ctx, service.postgresDB, characterID); err != nil {
		return errorx.Wrap(err, errorx.Service)
	}

	_ = service.cache.Delete(ctx, DBKeyCharacters(character.RoleID))
	return nil
}

// --- quizzes ---

func (service *ServiceCatalog) GetAllQuizzes(ctx context.Context) ([]*models.Quiz, error) {
	quizzes, err := datastore.GetAllQuizzes(ctx, service.postgresDB)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	return quizzes, nil
}

func validateQuiz(quiz *models.Quiz) error {
	if quiz.Title == "" {
		return errorx.Wrap(errors.New("quiz title required"), errorx.Validation)
	}
	if len(quiz.Questions) == 0 {
		return errorx.Wrap(errors.New("quiz needs at least one question"), errorx.Validation)
	}
	for _, q := range quiz.Questions {
		if len(q.Options) < 2 {
			return errorx.Wrap(errors.New("question needs at least two options"), errorx.Validation)
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			return errorx.Wrap(errors.New("correct answer out of range"), errorx.Validation)
		}
	}
	return nil
}

func (service *ServiceCatalog) CreateQuiz(ctx context.Context, quiz *models.Quiz) (*models.Quiz, error) {
	if err := validateQuiz(quiz); err != nil {
		return nil, err
	}

	quiz, err := datastore.CreateQuiz(ctx, service.postgresDB, quiz)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	_ = service.cache.Delete(ctx, DBKeyQuizzes())
	return quiz, nil
}

func (service *ServiceCatalog) EditQuiz(ctx context.Context, quiz *models.Quiz) (*models.Quiz, error) {
	if _, err := datastore.FindQuizByID(ctx, service.postgresDB, quiz.ID); err != nil {
		return nil, errorx.Wrap(errors.New("quiz not found"), errorx.NotExist)
	}
	if err := validateQuiz(quiz); err != nil {
		return nil, err
	}

	quiz, err := datastore.EditQuiz(ctx, service.postgresDB, quiz)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	_ = service.cache.Delete(ctx, DBKeyQuizzes())
	_ = service.cache.Delete(ctx, DBKeyQuiz(quiz.ID))
	return quiz, nil
}

func (service *ServiceCatalog) DeleteQuiz(ctx context.Context, quizID int64) error {
	if _, err := datastore.FindQuizByID(ctx, service.postgresDB, quizID); err != nil {
		return errorx.Wrap(errors.New("quiz not found"), errorx.NotExist)
	}

	if err := datastore.DeleteQuiz(ctx, service.postgresDB, quizID); err != nil {
		return errorx.Wrap(err, errorx.Service)
	}

	_ = service.cache.Delete(ctx, DBKeyQuizzes())
	_ = service.cache.Delete(ctx, DBKeyQuiz(quizID))
	return nil
}

// --- marathons ---

func (service *ServiceCatalog) GetAllMarathons(ctx context.Context) ([]*models.Marathon, error) {
	marathons, err := datastore.GetAllMarathons(ctx, service.postgresDB)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	return marathons, nil
}

func validateMarathon(marathon *models.Marathon) error {
	if marathon.Title == "" {
		return errorx.Wrap(errors.New("marathon title required"), errorx.Validation)
	}
	if marathon.DurationDays < 1 {
		return errorx.Wrap(errors.New("duration must be at least one day"), errorx.Validation)
	}
	for day := 1; day <= marathon.DurationDays; day++ {
		if marathon.TaskForDay(day) == nil {
			return errorx.Wrap(errors.New("every day needs a task"), errorx.Validation)
		}
	}
	return nil
}

func (service *ServiceCatalog) CreateMarathon(ctx context.Context, marathon *models.Marathon) (*models.Marathon, error) {
	if err := validateMarathon(marathon); err != nil {
		return nil, err
	}

	marathon, err := datastore.CreateMarathon(ctx, service.postgresDB, marathon)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	_ = service.cache.Delete(ctx, DBKeyMarathons())
	return marathon, nil
}

func (service *ServiceCatalog) EditMarathon(ctx context.Context, marathon *models.Marathon) (*models.Marathon, error) {
	if _, err := datastore.FindMarathonByID(ctx, service.postgresDB, marathon.ID); err != nil {
		return nil, errorx.Wrap(errors.New("marathon not found"), errorx.NotExist)
	}
	if err := validateMarathon(marathon); err != nil {
		return nil, err
	}

	marathon, err := datastore.EditMarathon(ctx, service.postgresDB, marathon)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	_ = service.cache.Delete(ctx, DBKeyMarathons())
	_ = service.cache.Delete(ctx, DBKeyMarathon(marathon.ID))
	return marathon, nil
}

func (service *ServiceCatalog) DeleteMarathon(ctx context.Context, marathonID int64) error {
	if _, err := datastore.FindMarathonByID(ctx, service.postgresDB, marathonID); err != nil {
		return errorx.Wrap(errors.New("marathon not found"), errorx.NotExist)
	}

	if err := datastore.DeleteMarathon(ctx, service.postgresDB, marathonID); err != nil {
		return errorx.Wrap(err, errorx.Service)
	}

	_ = service.cache.Delete(ctx, DBKeyMarathons())
	_ = service.cache.Delete(ctx, DBKeyMarathon(marathonID))
	return nil
}

// --- shop items ---

func (service *ServiceCatalog) GetAllShopItems(ctx context.Context) ([]*models.ShopItem, error) {
	items, err := datastore.GetAllShopItems(ctx, service.postgresDB)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	return items, nil
}

func validateShopItem(item *models.ShopItem) error {
	if item.Title == "" {
		return errorx.Wrap(errors.New("item title required"), errorx.Validation)
	}
	if item.Price < 0 {
		return errorx.Wrap(errors.New("price cannot be negative"), errorx.Validation)
	}
	if !item.Type.Valid() {
		return errorx.Wrap(errors.New("invalid item type"), errorx.Validation)
	}
	return nil
}

func (service *ServiceCatalog) CreateShopItem(ctx context.Context, item *models.ShopItem) (*models.ShopItem, error) {
	if err := validateShopItem(item); err != nil {
		return nil, err
	}

	item, err := datastore.CreateShopItem(ctx, service.postgresDB, item)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	_ = service.cache.Delete(ctx, DBKeyShopItems())
	return item, nil
}

func (service *ServiceCatalog) EditShopItem(ctx context.Context, item *models.ShopItem) (*models.ShopItem, error) {
	if _, err := datastore.FindShopItemByID(ctx, service.postgresDB, item.ID); err != nil {
		return nil, errorx.Wrap(errors.New("item not found"), errorx.NotExist)
	}
	if err := validateShopItem(item); err != nil {
		return nil, err
	}

	item, err := datastore.EditShopItem(ctx, service.postgresDB, item)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	_ = service.cache.Delete(ctx, DBKeyShopItems())
	return item, nil
}

func (service *ServiceCatalog) DeleteShopItem(ctx context.Context, itemID int64) error {
	if _, err := datastore.FindShopItemByID(ctx, service.postgresDB, itemID); err != nil {
		return errorx.Wrap(errors.New("item not found"), errorx.NotExist)
	}

	if err := datastore.DeleteShopItem(ctx, service.postgresDB, itemID); err != nil {
		return errorx.Wrap(err, errorx.Service)
	}

	_ = service.cache.Delete(ctx, DBKeyShopItems())
	return nil
}

// --- channel posts ---

func (service *ServiceCatalog) GetAllChannelPosts(ctx context.Context) ([]*models.ChannelPost, error) {
	posts, err := datastore.GetAllChannelPosts(ctx, service.postgresDB)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	return posts, nil
}

func (service *ServiceCatalog) CreateChannelPost(ctx context.Context, post *models.ChannelPost) (*models.ChannelPost, error) {
	if post.Title == "" {
		return nil, errorx.Wrap(errors.New("post title required"), errorx.Validation)
	}

	post, err := datastore.CreateChannelPost(ctx, service.postgresDB, post)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	_ = service.cache.Delete(ctx, DBKeyChannelPosts())
	return post, nil
}

func (service *ServiceCatalog) EditChannelPost(ctx context.Context, post *models.ChannelPost) (*models.ChannelPost, error) {
	if _, err := datastore.FindChannelPostByID(ctx, service.postgresDB, post.ID); err != nil {
		return nil, errorx.Wrap(errors.New("post not found"), errorx.NotExist)
	}
	if post.Title == "" {
		return nil, errorx.Wrap(errors.New("post title required"), errorx.Validation)
	}

	post, err := datastore.EditChannelPost(ctx, service.postgresDB, post)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	_ = service.cache.Delete(ctx, DBKeyChannelPosts())
	return post, nil
}

func (service *ServiceCatalog) DeleteChannelPost(ctx context.Context, postID int64) error {
	if _, err := datastore.FindChannelPostByID(ctx, service.postgresDB, postID); err != nil {
		return errorx.Wrap(errors.New("post not found"), errorx.NotExist)
	}

	if err := datastore.DeleteChannelPost(ctx, service.postgresDB, postID); err != nil {
		return errorx.Wrap(err, errorx.Service)
	}

	_ = service.cache.Delete(ctx, DBKeyChannelPosts())
	return nil
}

// --- interactives ---

func (service *ServiceCatalog) CreateInteractive(ctx context.Context, interactive *models.Interactive) (*models.Interactive, error) {
	if interactive.Title == "" || interactive.Question == "" {
		return nil, errorx.Wrap(errors.New("title and question required"), errorx.Validation)
	}

	interactive, err := datastore.CreateInteractive(ctx, service.postgresDB, interactive)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	_ = service.cache.Delete(ctx, DBKeyInteractives())
	return interactive, nil
}

func (service *ServiceCatalog) EditInteractive(ctx context.Context, interactive *models.Interactive) (*models.Interactive, error) {
	if _, err := datastore.FindInteractiveByID(ctx, service.postgresDB, interactive.ID); err != nil {
		return nil, errorx.Wrap(errors.New("interactive not found"), errorx.NotExist)
	}
	if interactive.Title == "" || interactive.Question == "" {
		return nil, errorx.Wrap(errors.New("title and question required"), errorx.Validation)
	}

	interactive, err := datastore.EditInteractive(ctx, service.postgresDB, interactive)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	_ = service.cache.Delete(ctx, DBKeyInteractives())
	return interactive, nil
}

func (service *ServiceCatalog) DeleteInteractive(ctx context.Context, interactiveID int64) error {
	if _, err := datastore.FindInteractiveByID(ctx, service.postgresDB, interactiveID); err != nil {
		return errorx.Wrap(errors.New("interactive not found"), errorx.NotExist)
	}

	if err := datastore.DeleteInteractive(ctx, service.postgresDB, interactiveID); err != nil {
		return errorx.Wrap(err, errorx.Service)
	}

	_ = service.cache.Delete(ctx, DBKeyInteractives())
	return nil
}
