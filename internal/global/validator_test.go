// Package global - Test các custom validator: no_xss, strong_password, platform.
package global

import "testing"

func TestValidateStrongPassword(t *testing.T) {
	InitValidator()

	type input struct {
		Password string `validate:"strong_password"`
	}

	cases := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"đủ 3 nhóm hoa thường số", "Password123", false},
		{"đủ 3 nhóm thường số đặc biệt", "password1!", false},
		{"đủ 4 nhóm", "Passw0rd!", false},
		{"ngắn hơn 8 ký tự", "Pa1!", true},
		{"chỉ chữ thường", "alllowercase", true},
		{"chỉ 2 nhóm", "password123", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate.Struct(input{Password: tc.password})
			if (err != nil) != tc.wantErr {
				t.Errorf("strong_password(%q) err = %v, wantErr = %v", tc.password, err, tc.wantErr)
			}
		})
	}
}

func TestValidatePlatform(t *testing.T) {
	InitValidator()

	type input struct {
		Platform string `validate:"platform"`
	}

	for _, p := range []string{"instagram", "tiktok", "youtube", "facebook", "x", "Instagram"} {
		if err := Validate.Struct(input{Platform: p}); err != nil {
			t.Errorf("platform %q phải hợp lệ, nhận lỗi %v", p, err)
		}
	}

	for _, p := range []string{"twitter", "threads", ""} {
		if err := Validate.Struct(input{Platform: p}); err == nil {
			t.Errorf("platform %q phải bị từ chối", p)
		}
	}
}

func TestValidateNoXSS(t *testing.T) {
	InitValidator()

	type input struct {
		Description string `validate:"no_xss"`
	}

	safe := []string{
		"Chiến dịch ra mắt sản phẩm mới",
		"Đăng 3 bài mỗi tuần, tag @brand",
		"",
	}
	for _, s := range safe {
		if err := Validate.Struct(input{Description: s}); err != nil {
			t.Errorf("chuỗi an toàn %q bị từ chối: %v", s, err)
		}
	}

	dangerous := []string{
		"<script>alert(1)</script>",
		"xem thêm tại javascript:void(0)",
		`<img src=x onerror=alert(1)>`,
		"<IFRAME src='http://evil'>",
	}
	for _, s := range dangerous {
		if err := Validate.Struct(input{Description: s}); err == nil {
			t.Errorf("chuỗi nguy hiểm %q phải bị từ chối", s)
		}
	}
}

func TestValidateExists(t *testing.T) {
	InitValidator()

	type input struct {
		ID string `validate:"omitempty,exists=collection_chua_dang_ky"`
	}

	cases := []struct {
		name    string
		id      string
		wantErr bool
	}{
		// Chuỗi rỗng là optional, bỏ qua kiểm tra tồn tại
		{"chuỗi rỗng được bỏ qua", "", false},
		// Hex không hợp lệ bị chặn trước khi query database
		{"hex không hợp lệ", "không-phải-objectid", true},
		// Collection chưa đăng ký trong registry thì không thể xác nhận tồn tại
		{"collection chưa đăng ký", "68a0000000000000000000dd", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate.Struct(input{ID: tc.id})
			if (err != nil) != tc.wantErr {
				t.Errorf("exists(%q) err = %v, wantErr = %v", tc.id, err, tc.wantErr)
			}
		})
	}
}
