package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/komunitech/komunitech/internal/cron"
	"github.com/komunitech/komunitech/internal/domain/notification"
	"github.com/komunitech/komunitech/internal/testutils"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/kubernetes/fake"
)

func run(t *testing.T, e *env, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd(e)
	root.SetOut(&out)
	root.SetArgs(args)
	require.NoError(t, root.ExecuteContext(context.Background()))
	return out.String()
}

func TestPurgeNotificationsCommand(t *testing.T) {
	gdb := testutils.NewSQLiteDB(t)
	w := testutils.SeedWorld(t, gdb)

	old := notification.Notification{UserID: w.Submitter.ID, Type: notification.TypeComment, Title: "lama", Message: "lama"}
	fresh := notification.Notification{UserID: w.Submitter.ID, Type: notification.TypeComment, Title: "baru", Message: "baru"}
	require.NoError(t, gdb.Create(&old).Error)
	require.NoError(t, gdb.Create(&fresh).Error)
	require.NoError(t, gdb.Model(&old).Update("created_at", time.Now().AddDate(0, 0, -40)).Error)

	e := &env{log: zerolog.Nop(), openDB: func() (*gorm.DB, error) { return gdb, nil }}
	out := run(t, e, "purge-notifications", "--days", "30")
	assert.Contains(t, out, "deleted 1 notifications")

	var left int64
	require.NoError(t, gdb.Model(&notification.Notification{}).Count(&left).Error)
	assert.Equal(t, int64(1), left)
}

func TestInstallAndUninstallCronJobCommands(t *testing.T) {
	cs := fake.NewSimpleClientset()
	e := &env{log: zerolog.Nop(), kube: func() (kubernetes.Interface, error) { return cs, nil }}

	out := run(t, e, "install-cronjob", "--namespace", "ops", "--image", "komunitech/maintenance:2", "--schedule", "15 4 * * *")
	assert.Contains(t, out, "created cronjob ops/"+cron.PurgeJobName)

	job, err := cs.BatchV1().CronJobs("ops").Get(context.Background(), cron.PurgeJobName, metav1.GetOptions{})
	require.NoError(t, err)
	assert.Equal(t, "15 4 * * *", job.Spec.Schedule)

	out = run(t, e, "install-cronjob", "--namespace", "ops", "--image", "komunitech/maintenance:3")
	assert.Contains(t, out, "updated")

	run(t, e, "uninstall-cronjob", "--namespace", "ops")
	list, err := cs.BatchV1().CronJobs("ops").List(context.Background(), metav1.ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}
