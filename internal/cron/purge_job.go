// Package cron manages the Kubernetes CronJob that runs the retention
// purges of cmd/maintenance on a schedule.
package cron

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"
	batchv1 "k8s.io/api/batch/v1"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
)

const (
	PurgeJobName    = "komunitech-retention-purge"
	DefaultSchedule = "0 3 * * *"
)

type PurgeJobOptions struct {
	Namespace                 string
	Schedule                  string
	Image                     string
	NotificationRetentionDays int
	AuditRetentionDays        int
	// EnvSecret names a Secret whose keys are exposed as env vars
	// (DB_HOST, DB_PASSWORD, ...) to the purge container.
	EnvSecret string
}

func (o PurgeJobOptions) withDefaults() PurgeJobOptions {
	if o.Namespace == "" {
		o.Namespace = "default"
	}
	if o.Schedule == "" {
		o.Schedule = DefaultSchedule
	}
	if o.NotificationRetentionDays <= 0 {
		o.NotificationRetentionDays = 30
	}
	if o.AuditRetentionDays <= 0 {
		o.AuditRetentionDays = 365
	}
	return o
}

func int32Ptr(i int32) *int32 { return &i }

// BuildPurgeCronJob renders the CronJob object. Both purges run in one
// container; the second only runs when the first succeeds.
func BuildPurgeCronJob(opts PurgeJobOptions) *batchv1.CronJob {
	opts = opts.withDefaults()

	script := fmt.Sprintf(
		"/maintenance purge-notifications --days %s && /maintenance purge-audit --days %s",
		strconv.Itoa(opts.NotificationRetentionDays),
		strconv.Itoa(opts.AuditRetentionDays),
	)
	container := corev1.Container{
		Name:    "purge",
		Image:   opts.Image,
		Command: []string{"/bin/sh", "-c"},
		Args:    []string{script},
	}
	if opts.EnvSecret != "" {
		container.EnvFrom = []corev1.EnvFromSource{{
			SecretRef: &corev1.SecretEnvSource{
				LocalObjectReference: corev1.LocalObjectReference{Name: opts.EnvSecret},
			},
		}}
	}

	return &batchv1.CronJob{
		ObjectMeta: metav1.ObjectMeta{
			Name:      PurgeJobName,
			Namespace: opts.Namespace,
			Labels:    map[string]string{"app.kubernetes.io/name": "komunitech", "app.kubernetes.io/component": "maintenance"},
		},
		Spec: batchv1.CronJobSpec{
			Schedule:                   opts.Schedule,
			ConcurrencyPolicy:          batchv1.ForbidConcurrent,
			SuccessfulJobsHistoryLimit: int32Ptr(3),
			FailedJobsHistoryLimit:     int32Ptr(3),
			JobTemplate: batchv1.JobTemplateSpec{
				Spec: batchv1.JobSpec{
					BackoffLimit: int32Ptr(2),
					Template: corev1.PodTemplateSpec{
						Spec: corev1.PodSpec{
							RestartPolicy: corev1.RestartPolicyOnFailure,
							Containers:    []corev1.Container{container},
						},
					},
				},
			},
		},
	}
}

// InstallPurgeCronJob creates the CronJob, or updates it in place when it
// already exists. It reports whether an existing object was updated.
func InstallPurgeCronJob(ctx context.Context, cs kubernetes.Interface, opts PurgeJobOptions, log zerolog.Logger) (bool, error) {
	if opts.Image == "" {
		return false, fmt.Errorf("purge cronjob: image is required")
	}
	desired := BuildPurgeCronJob(opts)
	jobs := cs.BatchV1().CronJobs(desired.Namespace)

	existing, err := jobs.Get(ctx, desired.Name, metav1.GetOptions{})
	switch {
	case err == nil:
		desired.ResourceVersion = existing.ResourceVersion
		if _, err := jobs.Update(ctx, desired, metav1.UpdateOptions{}); err != nil {
			return false, fmt.Errorf("update cronjob %s/%s: %w", desired.Namespace, desired.Name, err)
		}
		log.Info().Str("namespace", desired.Namespace).Str("schedule", desired.Spec.Schedule).Msg("updated purge cronjob")
		return true, nil
	case apierrors.IsNotFound(err):
		if _, err := jobs.Create(ctx, desired, metav1.CreateOptions{}); err != nil {
			return false, fmt.Errorf("create cronjob %s/%s: %w", desired.Namespace, desired.Name, err)
		}
		log.Info().Str("namespace", desired.Namespace).Str("schedule", desired.Spec.Schedule).Msg("created purge cronjob")
		return false, nil
	default:
		return false, fmt.Errorf("get cronjob %s/%s: %w", desired.Namespace, desired.Name, err)
	}
}

// DeletePurgeCronJob removes the CronJob. A missing object is not an error.
func DeletePurgeCronJob(ctx context.Context, cs kubernetes.Interface, namespace string, log zerolog.Logger) error {
	if namespace == "" {
		namespace = "default"
	}
	err := cs.BatchV1().CronJobs(namespace).Delete(ctx, PurgeJobName, metav1.DeleteOptions{})
	if err != nil && !apierrors.IsNotFound(err) {
		return fmt.Errorf("delete cronjob %s/%s: %w", namespace, PurgeJobName, err)
	}
	log.Info().Str("namespace", namespace).Msg("deleted purge cronjob")
	return nil
}
