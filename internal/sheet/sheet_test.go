package sheet

import (
	"reflect"
	"testing"
)

func TestAccepted(t *testing.T) {
	cases := []struct {
		filename    string
		contentType string
		want        bool
	}{
		{"products.xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", true},
		{"products.xls", "application/vnd.ms-excel", true},
		{"products.csv", "text/csv", true},
		{"products.csv", "text/csv; charset=utf-8", true},
		// Browsers often report CSV as text/plain; the extension rescues it.
		{"products.csv", "text/plain", true},
		{"upload.bin", "application/vnd.ms-excel", true},
		{"notes.txt", "text/plain", false},
		{"image.png", "image/png", false},
	}
	for _, c := range cases {
		if got := Accepted(c.filename, c.contentType); got != c.want {
			t.Errorf("Accepted(%q, %q) = %v, want %v", c.filename, c.contentType, got, c.want)
		}
	}
}

func TestDecodeCSVHeaderAliases(t *testing.T) {
	data := []byte("\xEF\xBB\xBFProduct Name,net_volume,YEAR,Sugar-Content\nMerlot Reserve,750ml,2018,dry\n")

	rows, err := Decode("import.csv", data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}

	in := ProductInput(rows[0])
	if in.Name != "Merlot Reserve" {
		t.Errorf("expected name resolved through alias, got %q", in.Name)
	}
	if in.NetVolume == nil || *in.NetVolume != "750ml" {
		t.Errorf("expected net volume 750ml, got %v", in.NetVolume)
	}
	if in.Vintage == nil || *in.Vintage != "2018" {
		t.Errorf("expected vintage via YEAR alias, got %v", in.Vintage)
	}
	if in.SugarContent == nil || *in.SugarContent != "dry" {
		t.Errorf("expected sugar content dry, got %v", in.SugarContent)
	}
}

func TestDecodeCSVRaggedRows(t *testing.T) {
	data := []byte("Name,Vintage,SKU\nShort Row\nFull Row,2020,SKU-9,extra-ignored\n")

	rows, err := Decode("import.csv", data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0]["name"] != "Short Row" {
		t.Errorf("expected short row name, got %q", rows[0]["name"])
	}
	if _, ok := rows[0]["vintage"]; ok {
		t.Error("expected missing cell to stay absent")
	}
	if rows[1]["sku"] != "SKU-9" {
		t.Errorf("expected SKU-9, got %q", rows[1]["sku"])
	}
}

func TestNormalizeHeader(t *testing.T) {
	cases := map[string]string{
		"Net Volume":    "netvolume",
		"net_volume":    "netvolume",
		"NET-VOLUME":    "netvolume",
		"  E Number  ":  "enumber",
		"SugarContent":  "sugarcontent",
		"sugar content": "sugarcontent",
	}
	for in, want := range cases {
		if got := normalizeHeader(in); got != want {
			t.Errorf("normalizeHeader(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSplitList(t *testing.T) {
	got := SplitList(" milk, soy ,, egg ")
	want := []string{"milk", "soy", "egg"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitList = %v, want %v", got, want)
	}
	if got := SplitList(""); len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
}

func TestWorkbookRoundTrip(t *testing.T) {
	rows := [][]interface{}{
		{"Riesling", "750ml", "2021", "white", "off-dry", "Mosel", "R-21"},
		{"Port", "", "", "", "", "", ""},
	}

	buf, err := Workbook("Products", ProductHeaders(), rows)
	if err != nil {
		t.Fatalf("Workbook failed: %v", err)
	}

	decoded, err := Decode("products.xlsx", buf.Bytes())
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("expected 2 rows back, got %d", len(decoded))
	}

	in := ProductInput(decoded[0])
	if in.Name != "Riesling" {
		t.Errorf("expected Riesling, got %q", in.Name)
	}
	if in.Appellation == nil || *in.Appellation != "Mosel" {
		t.Errorf("expected appellation Mosel, got %v", in.Appellation)
	}
	if in.SKU == nil || *in.SKU != "R-21" {
		t.Errorf("expected SKU R-21, got %v", in.SKU)
	}

	second := ProductInput(decoded[1])
	if second.Name != "Port" {
		t.Errorf("expected Port, got %q", second.Name)
	}
	if second.Vintage != nil {
		t.Errorf("expected empty vintage to stay nil, got %v", second.Vintage)
	}
}

func TestIngredientAllergensRoundTrip(t *testing.T) {
	data := []byte("Ingredient,Category,E Nr,Allergens\nLysozyme,Preservative,E1105,\"egg, milk\"\n")

	rows, err := Decode("ingredients.csv", data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}

	in := IngredientInput(rows[0])
	if in.Name != "Lysozyme" {
		t.Errorf("expected name via Ingredient alias, got %q", in.Name)
	}
	if in.ENumber == nil || *in.ENumber != "E1105" {
		t.Errorf("expected E1105 via E Nr alias, got %v", in.ENumber)
	}
	if !reflect.DeepEqual(in.Allergens, []string{"egg", "milk"}) {
		t.Errorf("expected split allergens, got %v", in.Allergens)
	}
}
