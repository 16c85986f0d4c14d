package cfg

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/jimlawless/whereami"
)

const (
	BackendSanity   = "sanity"
	BackendPostgres = "postgres"
)

type Config struct {
	Content *ContentCfg
	Sanity  *SanityCfg
	Db      *PGDBCfg // nil, если контент берётся не из PostgreSQL
	Minio   *MinIOCfg
	Http    *HTTPConfig
	Grpc    *GRPCConfig
	Redis   *RedisCfg
	Kafka   *KafkaCfg // nil, если KAFKA_BROKERS не задан
}

type ContentCfg struct {
	Backend string // sanity | postgres
}

type SanityCfg struct {
	ProjectID  string
	Dataset    string
	APIVersion string
	UseCDN     bool
	Token      string // Токен для приватных датасетов, может быть пустым
	Timeout    time.Duration
}

type KafkaCfg struct {
	Topic             string
	Brokers           []string
	NetworkMode       string
	Partitions        int
	ReplicationFactor int
}

type MinIOCfg struct {
	MinioEndpoint     string        // Адрес конечной точки Minio
	BucketName        string        // Бакет со служебными изображениями витрины
	MinioRootUser     string        // Имя пользователя для доступа к Minio
	MinioRootPassword string        // Пароль для доступа к Minio
	MinioUseSSL       bool          // Использовать ли TLS при подключении к Minio
	Region            string        // Регион бакета, чтобы подпись URL не ходила в сеть
	PlaceholderObject string        // Ключ объекта-заглушки для товаров без изображения
	PresignExpiry     time.Duration // Время жизни подписанной ссылки
}

type HTTPConfig struct {
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	AddToCartRPS   float64
	AddToCartBurst int
}

type GRPCConfig struct {
	Port        string
	NetworkMode string
}

type PGDBCfg struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisCfg struct {
	Addr        string
	Password    string
	User        string
	DB          int
	MaxRetries  int
	DialTimeout time.Duration
	Timeout     time.Duration
	ProductTTL  time.Duration
}

// Load безопасно загружает конфигурацию и возвращает ошибку в случае неудачи.
func Load(log logger.Logger) (*Config, error) {
	content, err := loadContentCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var (
		sanity *SanityCfg
		db     *PGDBCfg
	)
	switch content.Backend {
	case BackendSanity:
		sanity, err = loadSanityCfg(log)
	case BackendPostgres:
		db, err = loadPGDBCfg(log)
	}
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	http, err := loadHTTPConfig(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	redis, err := loadRedisCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	minio, err := loadMinIOCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	kafka, err := loadKafkaCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &Config{
		Content: content,
		Sanity:  sanity,
		Db:      db,
		Minio:   minio,
		Http:    http,
		Grpc:    loadGRPCConfig(),
		Redis:   redis,
		Kafka:   kafka,
	}, nil
}

func loadContentCfg() (*ContentCfg, error) {
	backend := strings.ToLower(getEnvOrDefault("CONTENT_BACKEND", BackendSanity))
	if backend != BackendSanity && backend != BackendPostgres {
		return nil, e.Wrap("CONTENT_BACKEND="+backend, e.ErrUnknownBackend)
	}

	return &ContentCfg{Backend: backend}, nil
}

func loadSanityCfg(log logger.Logger) (*SanityCfg, error) {
	const (
		defaultDataset    = "production"
		defaultAPIVersion = "2025-01-13"
		defaultUseCDN     = true
		defaultTimeout    = 10 * time.Second
	)

	projectID := getEnv("SANITY_PROJECT_ID")
	if projectID == "" {
		err := fmt.Errorf("SANITY_PROJECT_ID is required")
		log.Errorf(err, "missing SANITY_PROJECT_ID")
		return nil, err
	}

	useCDN, err := strconv.ParseBool(getEnvOrDefault("SANITY_USE_CDN", strconv.FormatBool(defaultUseCDN)))
	if err != nil {
		log.Errorf(err, "invalid SANITY_USE_CDN")
		return nil, err
	}

	timeout, err := parseDurationEnv("SANITY_TIMEOUT", defaultTimeout)
	if err != nil {
		log.Errorf(err, "invalid SANITY_TIMEOUT")
		return nil, err
	}

	return &SanityCfg{
		ProjectID:  projectID,
		Dataset:    getEnvOrDefault("SANITY_DATASET", defaultDataset),
		APIVersion: strings.TrimPrefix(getEnvOrDefault("SANITY_API_VERSION", defaultAPIVersion), "v"),
		UseCDN:     useCDN,
		Token:      getEnv("SANITY_TOKEN"),
		Timeout:    timeout,
	}, nil
}

// loadKafkaCfg возвращает nil без ошибки, если брокеры не заданы:
// тогда корзина работает в памяти процесса.
func loadKafkaCfg() (*KafkaCfg, error) {
	const (
		defaultTopic             = "cart-commands"
		defaultPartitions        = 3
		defaultReplicationFactor = 1
		defaultNetworkMode       = "tcp"
	)

	brokerStr := os.Getenv("KAFKA_BROKERS")
	if brokerStr == "" {
		return nil, nil
	}

	var brokers []string
	for _, b := range strings.Split(brokerStr, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	if len(brokers) == 0 {
		return nil, e.Wrap("KAFKA_BROKERS", e.ErrIncorrectEnvVariable)
	}

	partitions, err := parseIntEnv("KAFKA_PARTITIONS", defaultPartitions)
	if err != nil {
		return nil, e.Wrap("KAFKA_PARTITIONS", err)
	}

	replicationFactor, err := parseIntEnv("REPLICATION_FACTOR", defaultReplicationFactor)
	if err != nil {
		return nil, e.Wrap("REPLICATION_FACTOR", err)
	}

	return &KafkaCfg{
		Brokers:           brokers,
		Topic:             getEnvOrDefault("KAFKA_TOPIC", defaultTopic),
		Partitions:        partitions,
		ReplicationFactor: replicationFactor,
		NetworkMode:       getEnvOrDefault("KAFKA_NETWORK_MODE", defaultNetworkMode),
	}, nil
}

func loadMinIOCfg(log logger.Logger) (*MinIOCfg, error) {
	const (
		defaultUseSSL        = false
		defaultEndpoint      = "minio:9000"
		defaultBucket        = "storefront-assets"
		defaultRegion        = "us-east-1"
		defaultPlaceholder   = "placeholder.svg"
		defaultPresignExpiry = time.Hour
	)

	useSSL, err := strconv.ParseBool(getEnvOrDefault("MINIO_USE_SSL", strconv.FormatBool(defaultUseSSL)))
	if err != nil {
		log.Errorf(err, "invalid MINIO_USE_SSL")
		return nil, err
	}

	expiry, err := parseDurationEnv("PRESIGN_EXPIRY", defaultPresignExpiry)
	if err != nil {
		log.Errorf(err, "invalid PRESIGN_EXPIRY")
		return nil, err
	}

	return &MinIOCfg{
		MinioEndpoint:     getEnvOrDefault("MINIO_ENDPOINT", defaultEndpoint),
		BucketName:        getEnvOrDefault("BUCKET_NAME", defaultBucket),
		MinioRootUser:     getEnv("MINIO_ROOT_USER"),
		MinioRootPassword: getEnv("MINIO_ROOT_PASSWORD"),
		MinioUseSSL:       useSSL,
		Region:            getEnvOrDefault("MINIO_REGION", defaultRegion),
		PlaceholderObject: getEnvOrDefault("PLACEHOLDER_OBJECT", defaultPlaceholder),
		PresignExpiry:     expiry,
	}, nil
}

func loadHTTPConfig(log logger.Logger) (*HTTPConfig, error) {
	const (
		defaultPort           = "8080"
		defaultReadTimeout    = 5 * time.Second
		defaultWriteTimeout   = 15 * time.Second
		defaultIdleTimeout    = 60 * time.Second
		defaultAddToCartRPS   = 1.0
		defaultAddToCartBurst = 5
	)

	port := getEnvOrDefault("HTTP_PORT", defaultPort)

	readTimeout, err := parseDurationEnv("HTTP_READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("HTTP_WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_WRITE_TIMEOUT")
		return nil, err
	}

	idleTimeout, err := parseDurationEnv("KEEP_ALIVE", defaultIdleTimeout)
	if err != nil {
		log.Errorf(err, "invalid KEEP_ALIVE")
		return nil, err
	}

	rps, err := strconv.ParseFloat(getEnvOrDefault("ADD_TO_CART_RPS", strconv.FormatFloat(defaultAddToCartRPS, 'f', -1, 64)), 64)
	if err != nil || rps <= 0 {
		err = e.Wrap("ADD_TO_CART_RPS", e.ErrIncorrectEnvVariable)
		log.Errorf(err, "invalid ADD_TO_CART_RPS")
		return nil, err
	}

	burst, err := parseIntEnv("ADD_TO_CART_BURST", defaultAddToCartBurst)
	if err != nil || burst <= 0 {
		err = e.Wrap("ADD_TO_CART_BURST", e.ErrIncorrectEnvVariable)
		log.Errorf(err, "invalid ADD_TO_CART_BURST")
		return nil, err
	}

	return &HTTPConfig{
		Port:           port,
		ReadTimeout:    readTimeout,
		WriteTimeout:   writeTimeout,
		IdleTimeout:    idleTimeout,
		AddToCartRPS:   rps,
		AddToCartBurst: burst,
	}, nil
}

func loadGRPCConfig() *GRPCConfig {
	const (
		defaultPort        = "8091"
		defaultNetworkMode = "tcp"
	)

	return &GRPCConfig{
		Port:        getEnvOrDefault("GRPC_PORT", defaultPort),
		NetworkMode: getEnvOrDefault("GRPC_NETWORK_MODE", defaultNetworkMode),
	}
}

func loadPGDBCfg(log logger.Logger) (*PGDBCfg, error) {
	const (
		defaultHost    = "localhost"
		defaultPort    = "5432"
		defaultSSLMode = "disable"
	)

	user := getEnv("POSTGRES_USER")
	if user == "" {
		err := fmt.Errorf("POSTGRES_USER is required")
		log.Errorf(err, "missing POSTGRES_USER")
		return nil, err
	}

	password := getEnv("POSTGRES_PASSWORD")
	if password == "" {
		err := fmt.Errorf("POSTGRES_PASSWORD is required")
		log.Errorf(err, "missing POSTGRES_PASSWORD")
		return nil, err
	}

	dbName := getEnv("POSTGRES_DB")
	if dbName == "" {
		err := fmt.Errorf("POSTGRES_DB is required")
		log.Errorf(err, "missing POSTGRES_DB")
		return nil, err
	}

	return &PGDBCfg{
		Host:     getEnvOrDefault("POSTGRES_HOST", defaultHost),
		Port:     getEnvOrDefault("POSTGRES_PORT", defaultPort),
		User:     user,
		Password: password,
		DBName:   dbName,
		SSLMode:  getEnvOrDefault("SSL_MODE", defaultSSLMode),
	}, nil
}

func loadRedisCfg(log logger.Logger) (*RedisCfg, error) {
	const (
		defaultAddr         = "localhost:6379"
		defaultDB           = 0
		defaultMaxRetries   = 3
		defaultDialTimeout  = 5 * time.Second
		defaultReadTimeout  = 3 * time.Second
		defaultWriteTimeout = 3 * time.Second
		defaultProductTTL   = 3 * time.Minute
	)

	db, err := parseIntEnv("REDIS_DB_ID", defaultDB)
	if err != nil {
		log.Errorf(err, "invalid REDIS_DB_ID")
		return nil, err
	}

	maxRetries, err := parseIntEnv("MAX_RETRIES", defaultMaxRetries)
	if err != nil {
		log.Errorf(err, "invalid MAX_RETRIES")
		return nil, err
	}

	dialTimeout, err := parseDurationEnv("DIAL_TIMEOUT", defaultDialTimeout)
	if err != nil {
		log.Errorf(err, "invalid DIAL_TIMEOUT")
		return nil, err
	}

	readTimeout, err := parseDurationEnv("READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid WRITE_TIMEOUT")
		return nil, err
	}

	productTTL, err := parseDurationEnv("PRODUCT_TTL", defaultProductTTL)
	if err != nil {
		log.Errorf(err, "invalid PRODUCT_TTL")
		return nil, err
	}

	return &RedisCfg{
		Addr:        getEnvOrDefault("REDIS_ADDR", defaultAddr),
		Password:    getEnv("REDIS_PASSWORD"),
		User:        getEnv("REDIS_USER"),
		DB:          db,
		MaxRetries:  maxRetries,
		DialTimeout: dialTimeout,
		Timeout:     max(readTimeout, writeTimeout),
		ProductTTL:  productTTL,
	}, nil
}

// getEnv возвращает значение переменной окружения.
// Возвращает пустую строку, если переменная не задана.
func getEnv(key string) string {
	return os.Getenv(key)
}

// getEnvOrDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// parseDurationEnv считывает длительность или возвращает значение по умолчанию.
func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	if v := os.Getenv(key); v != "" {
		return time.ParseDuration(v)
	}

	return defaultValue, nil
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}

	intValue, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue, e.ErrIncorrectEnvVariable
	}

	return intValue, nil
}
