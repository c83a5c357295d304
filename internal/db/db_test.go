package db

import (
	"testing"

	"fitlink-backend/internal/config"
)

func TestBuildDSN(t *testing.T) {
	base := config.Config{
		DBUser:     "app",
		DBPassword: "secret",
		DBName:     "fitlink",
		DBPort:     "3306",
	}
	tests := []struct {
		name string
		mod  func(c *config.Config)
		want string
	}{
		{
			name: "plain host becomes tcp",
			mod:  func(c *config.Config) { c.DBHost = "127.0.0.1" },
			want: "app:secret@tcp(127.0.0.1:3306)/fitlink?charset=utf8mb4&parseTime=True&loc=Local",
		},
		{
			name: "cloud sql instance wins over host",
			mod: func(c *config.Config) {
				c.DBHost = "127.0.0.1"
				c.InstanceConnectionName = "proj:region:inst"
			},
			want: "app:secret@unix(/cloudsql/proj:region:inst)/fitlink?charset=utf8mb4&parseTime=True&loc=Local",
		},
		{
			name: "absolute path becomes unix socket",
			mod:  func(c *config.Config) { c.DBHost = "/var/run/mysqld/mysqld.sock" },
			want: "app:secret@unix(/var/run/mysqld/mysqld.sock)/fitlink?charset=utf8mb4&parseTime=True&loc=Local",
		},
		{
			name: "preformed tcp address passes through",
			mod:  func(c *config.Config) { c.DBHost = "tcp(db:3307)" },
			want: "app:secret@tcp(db:3307)/fitlink?charset=utf8mb4&parseTime=True&loc=Local",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mod(&cfg)
			if got := BuildDSN(&cfg); got != tt.want {
				t.Fatalf("BuildDSN = %q, want %q", got, tt.want)
			}
		})
	}
}
