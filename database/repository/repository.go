package repository

import (
	blockedRepo "timerange/database/repository/blocked"
)

// Re-export the BlockedRepository interface and constructor.
type BlockedRepository = blockedRepo.BlockedRepository

var NewMongoBlockedRepo = blockedRepo.NewMongoBlockedRepo
