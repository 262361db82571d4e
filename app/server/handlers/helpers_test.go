package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"blog-backend/app/server/jwt"
	"blog-backend/app/server/storage"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// fakeS3 记录对象存储调用，替代真实的 S3 客户端
type fakeS3 struct {
	puts    map[string][]byte
	deleted []string
	putErr  error
	delErr  error
}

func (f *fakeS3) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	if f.puts == nil {
		f.puts = map[string][]byte{}
	}
	f.puts[aws.ToString(params.Key)] = body
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, params *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.delErr != nil {
		return nil, f.delErr
	}
	f.deleted = append(f.deleted, aws.ToString(params.Key))
	return &s3.DeleteObjectOutput{}, nil
}

type fakePresigner struct {
	err error
}

func (f *fakePresigner) PresignGetObject(_ context.Context, params *s3.GetObjectInput, _ ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &v4.PresignedHTTPRequest{
		URL: fmt.Sprintf("https://%s.s3.amazonaws.com/%s?X-Amz-Signature=test",
			aws.ToString(params.Bucket), aws.ToString(params.Key)),
	}, nil
}

const testBucket = "covers"

func newTestApp(t *testing.T) (*App, sqlmock.Sqlmock, *fakeS3) {
	t.Helper()

	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = mockDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 mockDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("gorm.Open error: %v", err)
	}

	j, err := jwt.New("test-secret")
	if err != nil {
		t.Fatalf("jwt.New error: %v", err)
	}

	// 指向一个不可达的 redis ，缓存层退化为每次重新签名
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
	})

	s3c := &fakeS3{}
	store := storage.New(s3c, &fakePresigner{}, testBucket)

	return NewApp(zap.NewNop(), db, rdb, j, store), mock, s3c
}

func signTestToken(t *testing.T, a *App, id uint, username string) string {
	t.Helper()

	token, err := a.jwt.SignToken(&jwt.User{ID: id, Username: username})
	if err != nil {
		t.Fatalf("SignToken error: %v", err)
	}
	return token
}

func newJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func newMultipartContext(t *testing.T, method, target string, fields map[string]string, fileBody []byte) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("WriteField error: %v", err)
		}
	}
	fw, err := w.CreateFormFile("image", "cover.png")
	if err != nil {
		t.Fatalf("CreateFormFile error: %v", err)
	}
	if _, err := fw.Write(fileBody); err != nil {
		t.Fatalf("write file part error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer error: %v", err)
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func withTokenCookie(c echo.Context, token string) {
	c.Request().AddCookie(&http.Cookie{Name: tokenCookieName, Value: token})
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response %q: %v", rec.Body.String(), err)
	}
	return body
}

// userRows 登录和查询用户时 sqlmock 返回的行
func userRows(id uint, username, email, passwordHash string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "username", "email", "password"}).
		AddRow(id, username, email, passwordHash)
}

// postRows 文章查询时 sqlmock 返回的行骨架，行内容由调用方 AddRow 填充
func postRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "created_at", "title", "summary", "content", "cover", "author_id"})
}
