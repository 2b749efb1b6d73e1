package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load fail %v", err)
	}

	if cfg.Store.Driver != DriverRedis {
		t.Errorf("Store.Driver = %q, want %q", cfg.Store.Driver, DriverRedis)
	}
	if cfg.Redis.Addr() != "localhost:6379" {
		t.Errorf("Redis.Addr() = %q", cfg.Redis.Addr())
	}
	if cfg.Redis.PoolSize != 128 || cfg.Redis.MinIdleConns != 16 || cfg.Redis.MaxIdleConns != 128 {
		t.Errorf("redis pool = %+v", cfg.Redis)
	}
	if cfg.Redis.ConnMaxIdleTime != 60*time.Second {
		t.Errorf("Redis.ConnMaxIdleTime = %v, want 60s", cfg.Redis.ConnMaxIdleTime)
	}
	if cfg.IDs.Strategy != "range" || cfg.IDs.Min != 1 || cfg.IDs.Max != 1_000_000_000 {
		t.Errorf("IDs = %+v", cfg.IDs)
	}
}

func TestLoadFileAndEnvironment(t *testing.T) {
	dir := t.TempDir()
	yaml := `
app:
  profile: local
store:
  driver: bbolt
bbolt:
  path: /tmp/points.db
redis:
  readTimeout: 750ms
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config fail %v", err)
	}
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("SERVER_PORT", "9090")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load fail %v", err)
	}

	if cfg.App.Profile != ProfileLocal {
		t.Errorf("App.Profile = %q, want local", cfg.App.Profile)
	}
	if cfg.Store.Driver != DriverBBolt || cfg.BBolt.Path != "/tmp/points.db" {
		t.Errorf("store = %+v / %+v", cfg.Store, cfg.BBolt)
	}
	if cfg.Redis.ReadTimeout != 750*time.Millisecond {
		t.Errorf("Redis.ReadTimeout = %v, want 750ms", cfg.Redis.ReadTimeout)
	}
	if cfg.Redis.Port != 6380 {
		t.Errorf("Redis.Port = %d, want 6380 from the environment", cfg.Redis.Port)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("Server.Port = %q, want 9090 from the environment", cfg.Server.Port)
	}
}

func TestValidate(t *testing.T) {
	cases := map[string]func(c *Config){
		"driver":   func(c *Config) { c.Store.Driver = "etcd" },
		"strategy": func(c *Config) { c.IDs.Strategy = "sequence" },
		"range":    func(c *Config) { c.IDs.Min, c.IDs.Max = 10, 10 },
		"pool":     func(c *Config) { c.Redis.PoolSize = 0 },
	}

	for name, mutate := range cases {
		cfg, err := Load(t.TempDir())
		if err != nil {
			t.Fatalf("Load fail %v", err)
		}
		mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: Validate should fail", name)
		}
	}
}
