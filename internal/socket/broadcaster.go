package socket

import (
	"fmt"
)

// Broadcaster provides high-level methods for broadcasting events
type Broadcaster struct {
	hub *Hub
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hub *Hub) *Broadcaster {
	return &Broadcaster{hub: hub}
}

// ClubRoom returns the room name for a club
func ClubRoom(clubID string) string {
	return fmt.Sprintf("club:%s", clubID)
}

// TeamRoom returns the room name for a team
func TeamRoom(teamID string) string {
	return fmt.Sprintf("team:%s", teamID)
}

// ============================================
// Notification Broadcasting
// ============================================

// SendNotification sends a notification to a specific user
func (b *Broadcaster) SendNotification(userID string, notification map[string]interface{}) {
	b.hub.SendToUser(userID, MessageNotification, notification)
}

// SendNotificationCount updates notification count for a user
func (b *Broadcaster) SendNotificationCount(userID string, total, unread int) {
	b.hub.SendToUser(userID, MessageNotificationCount, map[string]interface{}{
		"total":  total,
		"unread": unread,
	})
}

// ============================================
// Mutation / Invalidation Broadcasting
// ============================================

// ReportMutation broadcasts an invalidate frame for a mutation to a club
// room, listing the derived views the mutation makes stale. Clients refetch
// the named views instead of guessing what changed.
func (b *Broadcaster) ReportMutation(clubID string, mutation Mutation, payload map[string]interface{}, excludeUserID string) {
	views := ViewsFor(mutation)
	if len(views) == 0 {
		return
	}
	if payload == nil {
		payload = map[string]interface{}{}
	}
	payload["mutation"] = string(mutation)
	payload["views"] = views
	payload["clubId"] = clubID

	b.hub.SendToRoom(ClubRoom(clubID), MessageInvalidate, payload, excludeUserID)
}

// ============================================
// Club Broadcasting
// ============================================

// BroadcastMemberAdded broadcasts a new club member to the club room
func (b *Broadcaster) BroadcastMemberAdded(clubID string, member map[string]interface{}) {
	b.hub.SendToRoom(ClubRoom(clubID), MessageMemberAdded, member, "")
	b.ReportMutation(clubID, MutationMemberAdded, nil, "")
}

// BroadcastMemberRemoved broadcasts a club member removal to the club room
func (b *Broadcaster) BroadcastMemberRemoved(clubID, userID string) {
	b.hub.SendToRoom(ClubRoom(clubID), MessageMemberRemoved, map[string]interface{}{
		"userId": userID,
	}, "")
	b.ReportMutation(clubID, MutationMemberRemoved, nil, "")
}

// BroadcastMemberRoleUpdated broadcasts a role change to the club room
func (b *Broadcaster) BroadcastMemberRoleUpdated(clubID, userID string, roles []string) {
	b.hub.SendToRoom(ClubRoom(clubID), MessageMemberRoleUpdated, map[string]interface{}{
		"userId": userID,
		"roles":  roles,
	}, "")
	b.ReportMutation(clubID, MutationMemberRoleChange, nil, "")
}

// ============================================
// Team Broadcasting
// ============================================

// BroadcastTeamCreated broadcasts team creation to the club room
func (b *Broadcaster) BroadcastTeamCreated(clubID string, team map[string]interface{}) {
	b.hub.SendToRoom(ClubRoom(clubID), MessageTeamCreated, team, "")
	b.ReportMutation(clubID, MutationTeamCreated, nil, "")
}

// BroadcastTeamDeleted broadcasts team deletion to the club room
func (b *Broadcaster) BroadcastTeamDeleted(clubID, teamID string) {
	b.hub.SendToRoom(ClubRoom(clubID), MessageTeamDeleted, map[string]interface{}{
		"teamId": teamID,
	}, "")
	b.ReportMutation(clubID, MutationTeamDeleted, nil, "")
}

// BroadcastTeamMemberAdded broadcasts a new team member to the club room
func (b *Broadcaster) BroadcastTeamMemberAdded(clubID, teamID string, member map[string]interface{}) {
	payload := map[string]interface{}{
		"teamId": teamID,
		"member": member,
	}
	b.hub.SendToRoom(ClubRoom(clubID), MessageTeamMemberAdded, payload, "")
	b.ReportMutation(clubID, MutationTeamMemberAdded, nil, "")
}

// BroadcastTeamMemberRemoved broadcasts a team member removal to the club room
func (b *Broadcaster) BroadcastTeamMemberRemoved(clubID, teamID, userID string) {
	b.hub.SendToRoom(ClubRoom(clubID), MessageTeamMemberRemoved, map[string]interface{}{
		"teamId": teamID,
		"userId": userID,
	}, "")
	b.ReportMutation(clubID, MutationTeamMemberGone, nil, "")
}

// ============================================
// Vault Broadcasting
// ============================================

// BroadcastSubfolderCreated broadcasts a new subfolder to the club room
func (b *Broadcaster) BroadcastSubfolderCreated(clubID string, subfolder map[string]interface{}, excludeUserID string) {
	b.hub.SendToRoom(ClubRoom(clubID), MessageSubfolderCreated, subfolder, excludeUserID)
	b.ReportMutation(clubID, MutationSubfolderCreated, nil, excludeUserID)
}

// BroadcastSubfolderDeleted broadcasts subfolder deletion to the club room
func (b *Broadcaster) BroadcastSubfolderDeleted(clubID, subfolderID string, excludeUserID string) {
	b.hub.SendToRoom(ClubRoom(clubID), MessageSubfolderDeleted, map[string]interface{}{
		"subfolderId": subfolderID,
	}, excludeUserID)
	b.ReportMutation(clubID, MutationSubfolderDeleted, nil, excludeUserID)
}

// BroadcastUpload broadcasts a photo or file upload to the club room
func (b *Broadcaster) BroadcastUpload(clubID, kind string, item map[string]interface{}, excludeUserID string) {
	msgType := MessageFileUploaded
	mutation := MutationFileUploaded
	if kind == "photos" {
		msgType = MessagePhotoUploaded
		mutation = MutationPhotoUploaded
	}
	b.hub.SendToRoom(ClubRoom(clubID), msgType, item, excludeUserID)
	b.ReportMutation(clubID, mutation, nil, excludeUserID)
}

// ============================================
// Duty Broadcasting
// ============================================

// BroadcastDutyCompleted broadcasts a duty completion to the club room
func (b *Broadcaster) BroadcastDutyCompleted(clubID string, completion map[string]interface{}) {
	b.hub.SendToRoom(ClubRoom(clubID), MessageDutyCompleted, completion, "")
	b.ReportMutation(clubID, MutationDutyCompleted, nil, "")
}

// BroadcastDutyApproved broadcasts a duty approval to the club room
func (b *Broadcaster) BroadcastDutyApproved(clubID string, completion map[string]interface{}) {
	b.hub.SendToRoom(ClubRoom(clubID), MessageDutyApproved, completion, "")
	b.ReportMutation(clubID, MutationDutyApproved, nil, "")
}
