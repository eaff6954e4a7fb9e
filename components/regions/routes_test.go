package regions

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMountPath_JoinsBasePath(t *testing.T) {
	if got := MountPath("/admin"); got != "/admin/api/regions" {
		t.Fatalf("unexpected mount path: %q", got)
	}
	if got := MountPath("admin"); got != "/admin/api/regions" {
		t.Fatalf("unexpected mount path: %q", got)
	}
	if got := MountPath("/admin/", WithRoutePath("api/areas")); got != "/admin/api/areas" {
		t.Fatalf("unexpected mount path: %q", got)
	}
	if got := MountPath(""); got != "/api/regions" {
		t.Fatalf("unexpected mount path: %q", got)
	}
}

func TestRegisterRoutes_RegistersHandler(t *testing.T) {
	mux := http.NewServeMux()
	pattern, err := New(WithTree(testTree(t))).RegisterRoutes(mux, "/admin")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if pattern != "/admin/api/regions" {
		t.Fatalf("unexpected registered pattern: %q", pattern)
	}

	req := httptest.NewRequest(http.MethodGet, pattern+"?id=1", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestRegisterRoutes_MissingMux(t *testing.T) {
	if _, err := RegisterRoutes(nil, "/"); err == nil {
		t.Fatalf("expected error for nil mux")
	}
}

func TestOpenAPI_DescribesEndpoint(t *testing.T) {
	doc, err := New(WithParam("parent")).OpenAPI(context.Background(), "/admin")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	item := doc.Paths.Find("/admin/api/regions")
	if item == nil || item.Get == nil {
		t.Fatalf("expected GET operation on mounted path")
	}
	if item.Get.OperationID != OperationID {
		t.Fatalf("unexpected operation id: %q", item.Get.OperationID)
	}
	if len(item.Get.Parameters) != 1 || item.Get.Parameters[0].Value.Name != "parent" {
		t.Fatalf("unexpected parameters: %#v", item.Get.Parameters)
	}
	if doc.Components.Schemas["Region"] == nil {
		t.Fatalf("expected Region schema")
	}
}
