package minio

import (
	"bytes"
	"context"
	"net/url"

	"github.com/DRSN-tech/storefront/internal/cfg"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/minio/minio-go/v7"
)

// ImageRepo хранит служебные изображения витрины (плейсхолдер) в MinIO.
type ImageRepo struct {
	mc  *minio.Client
	cfg *cfg.MinIOCfg
}

func NewImageRepo(mc *minio.Client, cfg *cfg.MinIOCfg) *ImageRepo {
	return &ImageRepo{
		mc:  mc,
		cfg: cfg,
	}
}

// EnsurePlaceholder загружает плейсхолдер, если его ещё нет в бакете.
func (i *ImageRepo) EnsurePlaceholder(ctx context.Context, data []byte, contentType string) error {
	_, err := i.mc.StatObject(ctx, i.cfg.BucketName, i.cfg.PlaceholderObject, minio.StatObjectOptions{})
	if err == nil {
		return nil
	}
	if minio.ToErrorResponse(err).Code != "NoSuchKey" {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	_, err = i.mc.PutObject(ctx, i.cfg.BucketName, i.cfg.PlaceholderObject, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// PresignedPlaceholderURL возвращает подписанную GET-ссылку на плейсхолдер.
func (i *ImageRepo) PresignedPlaceholderURL(ctx context.Context) (string, error) {
	u, err := i.mc.PresignedGetObject(ctx, i.cfg.BucketName, i.cfg.PlaceholderObject, i.cfg.PresignExpiry, url.Values{})
	if err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	return u.String(), nil
}
