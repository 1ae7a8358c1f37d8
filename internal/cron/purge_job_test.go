package cron

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	batchv1 "k8s.io/api/batch/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"
)

func TestBuildPurgeCronJobDefaults(t *testing.T) {
	job := BuildPurgeCronJob(PurgeJobOptions{Image: "komunitech/maintenance:1.0"})

	assert.Equal(t, "default", job.Namespace)
	assert.Equal(t, DefaultSchedule, job.Spec.Schedule)
	assert.Equal(t, batchv1.ForbidConcurrent, job.Spec.ConcurrencyPolicy)

	containers := job.Spec.JobTemplate.Spec.Template.Spec.Containers
	require.Len(t, containers, 1)
	assert.Equal(t, "komunitech/maintenance:1.0", containers[0].Image)
	assert.Contains(t, containers[0].Args[0], "purge-notifications --days 30")
	assert.Contains(t, containers[0].Args[0], "purge-audit --days 365")
	assert.Empty(t, containers[0].EnvFrom)
}

func TestBuildPurgeCronJobEnvSecret(t *testing.T) {
	job := BuildPurgeCronJob(PurgeJobOptions{Image: "img", EnvSecret: "komunitech-db", NotificationRetentionDays: 7})
	c := job.Spec.JobTemplate.Spec.Template.Spec.Containers[0]
	require.Len(t, c.EnvFrom, 1)
	assert.Equal(t, "komunitech-db", c.EnvFrom[0].SecretRef.Name)
	assert.Contains(t, c.Args[0], "--days 7")
}

func TestInstallPurgeCronJobCreatesThenUpdates(t *testing.T) {
	ctx := context.Background()
	cs := fake.NewSimpleClientset()
	log := zerolog.Nop()

	updated, err := InstallPurgeCronJob(ctx, cs, PurgeJobOptions{Namespace: "komunitech", Image: "img:1"}, log)
	require.NoError(t, err)
	assert.False(t, updated)

	updated, err = InstallPurgeCronJob(ctx, cs, PurgeJobOptions{Namespace: "komunitech", Image: "img:2", Schedule: "30 1 * * *"}, log)
	require.NoError(t, err)
	assert.True(t, updated)

	got, err := cs.BatchV1().CronJobs("komunitech").Get(ctx, PurgeJobName, metav1.GetOptions{})
	require.NoError(t, err)
	assert.Equal(t, "30 1 * * *", got.Spec.Schedule)
	assert.Equal(t, "img:2", got.Spec.JobTemplate.Spec.Template.Spec.Containers[0].Image)
}

func TestInstallPurgeCronJobRequiresImage(t *testing.T) {
	_, err := InstallPurgeCronJob(context.Background(), fake.NewSimpleClientset(), PurgeJobOptions{}, zerolog.Nop())
	assert.Error(t, err)
}

func TestDeletePurgeCronJob(t *testing.T) {
	ctx := context.Background()
	cs := fake.NewSimpleClientset()
	_, err := InstallPurgeCronJob(ctx, cs, PurgeJobOptions{Image: "img"}, zerolog.Nop())
	require.NoError(t, err)

	require.NoError(t, DeletePurgeCronJob(ctx, cs, "", zerolog.Nop()))
	list, err := cs.BatchV1().CronJobs("default").List(ctx, metav1.ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)

	// already gone
	assert.NoError(t, DeletePurgeCronJob(ctx, cs, "", zerolog.Nop()))
}
