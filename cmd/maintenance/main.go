// Command maintenance runs schema migrations and retention purges, and
// installs the CronJob that runs those purges inside the cluster.
package main

import (
	"fmt"
	"os"

	"github.com/komunitech/komunitech/internal/config"
	"github.com/komunitech/komunitech/internal/config/db"
	"github.com/komunitech/komunitech/pkg/k8s"
	"github.com/komunitech/komunitech/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"k8s.io/client-go/kubernetes"
)

func main() {
	config.LoadConfig()
	log := logger.New("maintenance")

	root := newRootCmd(&env{
		log: log,
		openDB: func() (*gorm.DB, error) {
			return db.Open(postgres.Open(db.DSN()))
		},
		kube: func() (kubernetes.Interface, error) {
			return k8s.NewClientset(config.KubeConfig)
		},
	})
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
