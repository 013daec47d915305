package handler

import (
	"github.com/skillswap/skillswap-web/internal/core/ports"
)

// --- Request → catalog input ---

func toUpdateProfileInput(req updateProfileRequest) ports.UpdateProfileInput {
	in := ports.UpdateProfileInput{Name: &req.Name, Bio: &req.Bio}
	if req.Timezone != "" {
		in.Timezone = &req.Timezone
	}
	return in
}

func toAddSkillInput(req addSkillRequest) ports.AddSkillInput {
	in := ports.AddSkillInput{
		SkillType:        req.SkillType,
		ProficiencyLevel: req.ProficiencyLevel,
	}
	if req.SkillID != nil {
		in.SkillID = req.SkillID
	} else {
		in.CustomSkillName = req.CustomSkillName
	}
	return in
}

func toCreateSessionInput(req createSessionRequest) ports.CreateSessionInput {
	in := ports.CreateSessionInput{
		Title:          req.Title,
		Description:    req.Description,
		SessionType:    req.SessionType,
		ScheduledStart: req.ScheduledStart.UTC(),
		ScheduledEnd:   req.ScheduledEnd.UTC(),
		Participants:   make([]ports.ParticipantInput, 0, len(req.Participants)),
	}
	if req.SkillID != nil {
		in.SkillID = req.SkillID
	} else {
		in.CustomSkillName = req.CustomSkillName
	}
	for _, p := range req.Participants {
		in.Participants = append(in.Participants, ports.ParticipantInput{UserID: p.UserID, Role: p.Role})
	}
	return in
}

func toCreateReviewInput(sessionID string, req reviewRequest) ports.CreateReviewInput {
	return ports.CreateReviewInput{
		SessionID:  sessionID,
		RevieweeID: req.RevieweeID,
		Rating:     req.Rating,
		ReviewText: req.ReviewText,
	}
}
