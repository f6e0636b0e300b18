package events

import (
	"context"
	"testing"
	"time"
)

// TestOnDataChangedNhanSuKien kiểm tra handler đã đăng ký nhận được sự kiện phát ra.
func TestOnDataChangedNhanSuKien(t *testing.T) {
	received := make(chan DataChangeEvent, 1)
	OnDataChanged(func(ctx context.Context, e DataChangeEvent) {
		received <- e
	})

	EmitDataChanged(context.Background(), DataChangeEvent{
		CollectionName: "campaigns",
		Operation:      OpUpdate,
		Document:       map[string]interface{}{"_id": "abc"},
	})

	select {
	case e := <-received:
		if e.CollectionName != "campaigns" {
			t.Errorf("CollectionName = %q, mong muốn campaigns", e.CollectionName)
		}
		if e.Operation != OpUpdate {
			t.Errorf("Operation = %q, mong muốn %q", e.Operation, OpUpdate)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Handler không nhận được sự kiện sau 2 giây")
	}
}

// TestEmitKhongChanKhiHandlerPanic kiểm tra một handler panic không làm
// các handler khác mất sự kiện.
func TestEmitKhongChanKhiHandlerPanic(t *testing.T) {
	received := make(chan struct{}, 1)
	OnDataChanged(func(ctx context.Context, e DataChangeEvent) {
		if e.CollectionName == "panic_case" {
			panic("hỏng")
		}
	})
	OnDataChanged(func(ctx context.Context, e DataChangeEvent) {
		if e.CollectionName == "panic_case" {
			received <- struct{}{}
		}
	})

	EmitDataChanged(context.Background(), DataChangeEvent{
		CollectionName: "panic_case",
		Operation:      OpDelete,
	})

	select {
	case <-received:
	case <-time.After(2 * time.Second):
		t.Fatal("Handler thứ hai không nhận được sự kiện khi handler khác panic")
	}
}
