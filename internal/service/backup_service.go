package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"clubportal/internal/backup"
	"clubportal/internal/model"
)

const (
	ActivityBackup  = "BACKUP"
	ActivityRestore = "RESTORE"
)

// BackupService exposes backups to teachers.
type BackupService interface {
	Create(ctx context.Context, actor model.Principal, kind backup.Kind, description string) (*backup.Info, error)
	List(ctx context.Context, actor model.Principal) ([]backup.Info, error)
	Path(ctx context.Context, actor model.Principal, name string) (string, error)
	Restore(ctx context.Context, actor model.Principal, r io.ReaderAt, size int64, tables []string) ([]string, error)
}

// UserCache is cleared after a restore replaces the users table.
type UserCache interface {
	ForgetCached(ctx context.Context) error
}

type backupService struct {
	manager  *backup.Manager
	users    UserCache
	activity ActivityRecorder
}

// NewBackupService creates a new backup service. users and activity may be nil.
func NewBackupService(manager *backup.Manager, users UserCache, activity ActivityRecorder) BackupService {
	return &backupService{manager: manager, users: users, activity: recorderOrNop(activity)}
}

func (s *backupService) Create(ctx context.Context, actor model.Principal, kind backup.Kind, description string) (*backup.Info, error) {
	if err := requireTeacher(actor, "create backup"); err != nil {
		return nil, err
	}
	info, err := s.manager.Create(ctx, kind, description)
	target := string(kind)
	if info != nil {
		target = info.Name
	}
	s.activity.Log(ctx, actor.Username, ActivityBackup, fmt.Sprintf("create %s backup", kind), target, err)
	return info, err
}

func (s *backupService) List(_ context.Context, actor model.Principal) ([]backup.Info, error) {
	if err := requireTeacher(actor, "list backups"); err != nil {
		return nil, err
	}
	return s.manager.List()
}

func (s *backupService) Path(_ context.Context, actor model.Principal, name string) (string, error) {
	if err := requireTeacher(actor, "download backup"); err != nil {
		return "", err
	}
	return s.manager.Path(name)
}

func (s *backupService) Restore(ctx context.Context, actor model.Principal, r io.ReaderAt, size int64, tables []string) ([]string, error) {
	if err := requireTeacher(actor, "restore backup"); err != nil {
		return nil, err
	}
	restored, err := s.manager.Restore(ctx, r, size, tables)
	if s.users != nil && slices.Contains(restored, "users") {
		if ferr := s.users.ForgetCached(ctx); ferr != nil {
			slog.WarnContext(ctx, "clear cached users after restore", slog.Any("err", ferr))
		}
	}
	s.activity.Log(ctx, actor.Username, ActivityRestore,
		fmt.Sprintf("restore %d tables", len(restored)), strings.Join(restored, ","), err)
	return restored, err
}
