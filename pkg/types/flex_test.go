package types

import (
	"encoding/json"
	"testing"
)

func TestFlexIntAcceptsNumberAndString(t *testing.T) {
	var payload struct {
		Qty FlexInt `json:"qty"`
	}

	if err := json.Unmarshal([]byte(`{"qty": 3}`), &payload); err != nil {
		t.Fatalf("number form: %v", err)
	}
	if !payload.Qty.Set || payload.Qty.Value != 3 {
		t.Fatalf("expected qty 3, got %+v", payload.Qty)
	}

	payload.Qty = FlexInt{}
	if err := json.Unmarshal([]byte(`{"qty": "7"}`), &payload); err != nil {
		t.Fatalf("string form: %v", err)
	}
	if !payload.Qty.Set || payload.Qty.Value != 7 {
		t.Fatalf("expected qty 7, got %+v", payload.Qty)
	}
}

func TestFlexIntRejectsGarbage(t *testing.T) {
	var payload struct {
		Qty FlexInt `json:"qty"`
	}
	if err := json.Unmarshal([]byte(`{"qty": "three"}`), &payload); err == nil {
		t.Fatal("expected error for non-numeric string")
	}
	if err := json.Unmarshal([]byte(`{"qty": 2.5}`), &payload); err == nil {
		t.Fatal("expected error for fractional quantity")
	}
}

func TestFlexIntNullAndEmptyStayUnset(t *testing.T) {
	var payload struct {
		Qty FlexInt `json:"qty"`
	}
	if err := json.Unmarshal([]byte(`{"qty": null}`), &payload); err != nil {
		t.Fatalf("null: %v", err)
	}
	if payload.Qty.Set {
		t.Fatal("null should leave the value unset")
	}
	if err := json.Unmarshal([]byte(`{"qty": ""}`), &payload); err != nil {
		t.Fatalf("empty string: %v", err)
	}
	if payload.Qty.Set {
		t.Fatal("empty string should leave the value unset")
	}
}

func TestFlexDecimalAcceptsNumberAndString(t *testing.T) {
	var payload struct {
		Price FlexDecimal `json:"price"`
	}

	if err := json.Unmarshal([]byte(`{"price": 149.75}`), &payload); err != nil {
		t.Fatalf("number form: %v", err)
	}
	if !payload.Price.Set || payload.Price.Value.String() != "149.75" {
		t.Fatalf("expected 149.75, got %+v", payload.Price)
	}

	payload.Price = FlexDecimal{}
	if err := json.Unmarshal([]byte(`{"price": "99.50"}`), &payload); err != nil {
		t.Fatalf("string form: %v", err)
	}
	if !payload.Price.Set || payload.Price.Value.String() != "99.5" {
		t.Fatalf("expected 99.5, got %+v", payload.Price)
	}
}

func TestFlexDecimalRejectsGarbage(t *testing.T) {
	var payload struct {
		Price FlexDecimal `json:"price"`
	}
	if err := json.Unmarshal([]byte(`{"price": "cheap"}`), &payload); err == nil {
		t.Fatal("expected error for non-numeric string")
	}
}
