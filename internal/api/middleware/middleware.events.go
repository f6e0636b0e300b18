package middleware

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"kol_market/internal/api/events"
	"kol_market/internal/global"
	"kol_market/internal/logger"
	"kol_market/internal/utility"
)

var subscribersOnce sync.Once

// RegisterDataChangeSubscribers đăng ký các handler phản ứng với sự kiện
// thay đổi dữ liệu từ tầng CRUD. Gọi một lần khi init app.
//   - Audit log: mọi thao tác insert/update/upsert/delete đều được ghi lại.
//   - Cache tài khoản: khi document trong collection tài khoản thay đổi,
//     cache của Authenticator bị vô hiệu để request sau nạp lại từ database.
func RegisterDataChangeSubscribers() {
	subscribersOnce.Do(func() {
		events.OnDataChanged(auditDataChange)
		events.OnDataChanged(invalidateAccountCache)
	})
}

// auditDataChange ghi audit log cho mọi thay đổi dữ liệu
func auditDataChange(ctx context.Context, e events.DataChangeEvent) {
	fields := logrus.Fields{
		"collection": e.CollectionName,
		"operation":  e.Operation,
	}
	if id, ok := documentID(e.Document); ok {
		fields["document_id"] = id
	}
	logger.GetAuditLogger().WithFields(fields).Info("Dữ liệu thay đổi")
}

// invalidateAccountCache vô hiệu cache tài khoản khi collection tài khoản thay đổi
func invalidateAccountCache(ctx context.Context, e events.DataChangeEvent) {
	role := roleForCollection(e.CollectionName)
	if role == "" {
		return
	}
	id, ok := documentID(e.Document)
	if !ok {
		return
	}
	GetAuthenticator().InvalidateAccount(role, id)
}

// roleForCollection là ánh xạ ngược của collectionNameForRole
func roleForCollection(colName string) string {
	switch colName {
	case global.MongoDB_ColNames.Brands:
		return RoleBrand
	case global.MongoDB_ColNames.Influencers:
		return RoleInfluencer
	case global.MongoDB_ColNames.Admins:
		return RoleAdmin
	default:
		return ""
	}
}

// documentID lấy _id dạng hex string từ document của event
func documentID(doc interface{}) (string, bool) {
	if doc == nil {
		return "", false
	}
	m, err := utility.ToMap(doc)
	if err != nil {
		return "", false
	}
	switch id := m["_id"].(type) {
	case primitive.ObjectID:
		return id.Hex(), true
	case string:
		return id, true
	}
	return "", false
}
