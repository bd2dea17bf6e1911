// Package dto defines data transfer objects for the user feature's HTTP transport layer.
package dto

import "jobnaut/internal/feature/user/domain/entity"

// SkillsReq is the request body for adding or removing skills.
type SkillsReq struct {
	Skills []string `json:"skills" binding:"required"`
}

// ProfileRes wraps a profile in the response envelope.
type ProfileRes struct {
	Profile *entity.Profile `json:"profile"`
}
