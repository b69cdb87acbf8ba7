package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
	}))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Port != "3001" || cfg.APIPrefix != "/api" {
		t.Fatalf("unexpected defaults: port=%s prefix=%s", cfg.Port, cfg.APIPrefix)
	}
	if cfg.Auth.TokenTTL != time.Hour {
		t.Fatalf("unexpected token ttl %s", cfg.Auth.TokenTTL)
	}
	if cfg.Auth.PasswordMinLength != 1 {
		t.Fatalf("expected any non-empty password by default, got min %d", cfg.Auth.PasswordMinLength)
	}
	if cfg.Mongo.Timeout != 10*time.Second {
		t.Fatalf("unexpected mongo timeout %s", cfg.Mongo.Timeout)
	}
	if cfg.S3.URLTTL != 7*24*time.Hour {
		t.Fatalf("unexpected url ttl %s", cfg.S3.URLTTL)
	}
	if cfg.MaxUploadBytes != 10<<20 {
		t.Fatalf("unexpected upload limit %d", cfg.MaxUploadBytes)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Fatalf("unexpected cors origins %v", cfg.CORSOrigins)
	}
	if !cfg.IsDevelopment() {
		t.Fatalf("expected development env")
	}
}

func TestLoadWith_RequiresSecret(t *testing.T) {
	if _, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{})); err == nil {
		t.Fatalf("expected error without JWT_SECRET")
	}
}

func TestLoadWith_Overrides(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":   "s3cret",
		"API_PREFIX":   "v1/",
		"CORS_ORIGINS": "http://a.test,http://b.test",
		"S3_ENDPOINT":  "http://minio:9000",
		"ENV":          "production",
	}))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.APIPrefix != "/v1" {
		t.Fatalf("expected /v1, got %s", cfg.APIPrefix)
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Fatalf("expected 2 origins, got %v", cfg.CORSOrigins)
	}
	if cfg.S3.Endpoint != "http://minio:9000" || cfg.IsDevelopment() {
		t.Fatalf("unexpected config %+v", cfg)
	}
}
