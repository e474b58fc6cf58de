package database

import "gatormarket/internal/models"

// PersistentModels returns the schema-managed GORM models in dependency order.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.ProductImage{},
		&models.Conversation{},
		&models.ConversationParticipant{},
		&models.Message{},
		&models.WishlistEntry{},
		&models.Review{},
		&models.UserReport{},
		&models.ListingReport{},
		&models.AdminAction{},
	}
}
