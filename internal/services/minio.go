package services

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"path/filepath"

	"parfumerie_back_end/internal/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var MinioClient *minio.Client

var minioEndpoint string

// ConnectMinio initialise le client MinIO ; l'upload d'images est
// optionnel, l'absence de configuration n'empêche pas le démarrage.
func ConnectMinio(cfg *config.Config) {
	if cfg.MinioEndpoint == "" {
		log.Println("⚠️ MinIO non configuré — upload d'images désactivé")
		return
	}

	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: false, // ⚠️ à passer à true si tu as HTTPS
	})
	if err != nil {
		log.Println("⚠️ MinIO non configuré :", err)
		return
	}
	MinioClient = client
	minioEndpoint = cfg.MinioEndpoint
	log.Println("✅ Connecté à MinIO :", cfg.MinioEndpoint)
}

// UploadProductImage pousse le fichier dans le bucket avec un nom d'objet
// aléatoire (l'extension d'origine est conservée) et retourne son URL.
func UploadProductImage(bucket string, file *multipart.FileHeader) (string, error) {
	if MinioClient == nil {
		return "", fmt.Errorf("MinIO non initialisé")
	}
	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	objectName := uuid.New().String() + filepath.Ext(file.Filename)

	_, err = MinioClient.PutObject(context.Background(), bucket, objectName, f, file.Size,
		minio.PutObjectOptions{ContentType: file.Header.Get("Content-Type")})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("http://%s/%s/%s", minioEndpoint, bucket, objectName)
	return url, nil
}
