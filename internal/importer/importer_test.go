package importer

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdmedical/crm-import/internal/model"
	"github.com/pdmedical/crm-import/internal/store"
)

// fakeStore is an in-memory Store for orchestrator tests. It records
// insert counts so cache behavior is observable.
type fakeStore struct {
	products   map[string]string // product_code -> id
	categories map[string]string // name -> id
	orgs       map[string]string // domain -> id
	orgNames   map[string]string // id -> name
	contacts   map[string]string // email -> id
	interests  map[string]bool   // contact|product

	nextID int

	productInserts  int
	orgInserts      int
	contactInserts  int
	interestInserts int

	failProductInsert  bool
	failInterestInsert error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products:   map[string]string{},
		categories: map[string]string{},
		orgs:       map[string]string{},
		orgNames:   map[string]string{},
		contacts:   map[string]string{},
		interests:  map[string]bool{},
	}
}

func (f *fakeStore) id() string {
	f.nextID++
	return fmt.Sprintf("id-%d", f.nextID)
}

func (f *fakeStore) GetProductIDByCode(_ context.Context, code string) (string, error) {
	return f.products[code], nil
}

func (f *fakeStore) InsertProduct(_ context.Context, p model.Product, _ *string) (string, error) {
	if f.failProductInsert {
		return "", fmt.Errorf("boom")
	}
	f.productInserts++
	id := f.id()
	f.products[p.ProductCode] = id
	return id, nil
}

func (f *fakeStore) GetCategoryIDByName(_ context.Context, name string) (string, error) {
	return f.categories[name], nil
}

func (f *fakeStore) InsertCategory(_ context.Context, name, _ string) (string, error) {
	id := f.id()
	f.categories[name] = id
	return id, nil
}

func (f *fakeStore) GetOrganizationIDByDomain(_ context.Context, domain string) (string, error) {
	return f.orgs[domain], nil
}

func (f *fakeStore) FindOrganizationIDByName(_ context.Context, name string) (string, error) {
	for id, n := range f.orgNames {
		if strings.Contains(strings.ToLower(n), strings.ToLower(name)) {
			return id, nil
		}
	}
	return "", nil
}

func (f *fakeStore) InsertOrganization(_ context.Context, name, domain string) (string, error) {
	f.orgInserts++
	id := f.id()
	f.orgs[domain] = id
	f.orgNames[id] = name
	return id, nil
}

func (f *fakeStore) GetContactIDByEmail(_ context.Context, email string) (string, error) {
	return f.contacts[email], nil
}

func (f *fakeStore) InsertContact(_ context.Context, c store.NewContact) (string, error) {
	f.contactInserts++
	id := f.id()
	f.contacts[c.Email] = id
	return id, nil
}

func (f *fakeStore) InterestExists(_ context.Context, contactID, productID string) (bool, error) {
	return f.interests[contactID+"|"+productID], nil
}

func (f *fakeStore) InsertInterest(_ context.Context, in store.Interest) error {
	if f.failInterestInsert != nil {
		return f.failInterestInsert
	}
	f.interestInserts++
	f.interests[in.ContactID+"|"+in.ProductID] = true
	return nil
}

func (f *fakeStore) TotalCounts(_ context.Context) (store.Counts, error) {
	return store.Counts{
		Products:      len(f.products),
		Contacts:      len(f.contacts),
		Interests:     len(f.interests),
		Organizations: len(f.orgs),
	}, nil
}

func (f *fakeStore) ProductsByCategory(_ context.Context) (map[string]int, error) {
	return map[string]int{}, nil
}

func (f *fakeStore) ProductsByPriority(_ context.Context) (map[string]int, error) {
	return map[string]int{}, nil
}

func (f *fakeStore) Migrate(context.Context) error { return nil }
func (f *fakeStore) Ping(context.Context) error    { return nil }
func (f *fakeStore) Close() error                  { return nil }

func testProducts() []model.Product {
	return []model.Product{
		{
			ProductCode:          "PDM-001",
			ProductName:          strptr("Widget X"),
			CategoryName:         strptr("Wound Care"),
			KeyContactsReference: strptr("Contact: Jane Doe, jane.doe@example.com"),
		},
		{
			ProductCode:          "PDM-002",
			ProductName:          strptr("Widget Y"),
			CategoryName:         strptr("Wound Care"),
			KeyContactsReference: strptr("also via jane.doe@example.com"),
		},
	}
}

func TestImporter_Run_CreatesEverything(t *testing.T) {
	st := newFakeStore()
	im := New(st, "pdmedical.com.au")

	summary := im.Run(context.Background(), testProducts())

	assert.Equal(t, 2, summary.Imported)
	assert.Equal(t, 0, summary.Skipped)
	assert.Equal(t, 0, summary.Failed)
	assert.Equal(t, 1, summary.ContactsCreated)
	assert.Equal(t, 2, summary.InterestsCreated)

	// Shared email means one contact and one organization.
	assert.Equal(t, 1, st.contactInserts)
	assert.Equal(t, 1, st.orgInserts)
	assert.Equal(t, 2, st.productInserts)
	assert.Len(t, st.categories, 1)
}

func TestImporter_Run_IsIdempotent(t *testing.T) {
	st := newFakeStore()

	first := New(st, "pdmedical.com.au").Run(context.Background(), testProducts())
	require.Equal(t, 2, first.Imported)

	// Fresh importer, same backend: everything already exists.
	second := New(st, "pdmedical.com.au").Run(context.Background(), testProducts())

	assert.Equal(t, 0, second.Imported)
	assert.Equal(t, 2, second.Skipped)
	assert.Equal(t, 0, second.ContactsCreated)
	assert.Equal(t, 0, second.InterestsCreated)

	assert.Equal(t, 2, st.productInserts)
	assert.Equal(t, 1, st.contactInserts)
	assert.Equal(t, 2, st.interestInserts)
}

func TestImporter_Run_SkippedProductStillLinksContacts(t *testing.T) {
	st := newFakeStore()
	products := testProducts()

	// Pre-existing product with no interest link yet.
	st.products["PDM-001"] = "existing-1"

	summary := New(st, "pdmedical.com.au").Run(context.Background(), products[:1])

	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 1, summary.ContactsCreated)
	assert.Equal(t, 1, summary.InterestsCreated)
	assert.True(t, st.interests[st.contacts["jane.doe@example.com"]+"|existing-1"])
}

func TestImporter_Run_ProductInsertFailureContinues(t *testing.T) {
	st := newFakeStore()
	st.failProductInsert = true

	summary := New(st, "pdmedical.com.au").Run(context.Background(), testProducts())

	assert.Equal(t, 0, summary.Imported)
	assert.Equal(t, 2, summary.Failed)
	assert.Len(t, summary.Errors, 2)
	// No product id means no contact processing.
	assert.Equal(t, 0, st.contactInserts)
}

func TestImporter_Run_DuplicateInterestSwallowed(t *testing.T) {
	st := newFakeStore()
	st.failInterestInsert = &pgconn.PgError{Code: "23505"}

	summary := New(st, "pdmedical.com.au").Run(context.Background(), testProducts()[:1])

	assert.Equal(t, 1, summary.Imported)
	assert.Equal(t, 0, summary.Failed)
	assert.Equal(t, 0, summary.InterestsCreated)
}

func TestImporter_Run_NoContactReference(t *testing.T) {
	st := newFakeStore()

	summary := New(st, "pdmedical.com.au").Run(context.Background(), []model.Product{
		{ProductCode: "PDM-010"},
	})

	assert.Equal(t, 1, summary.Imported)
	assert.Equal(t, 0, summary.ContactsCreated)
	assert.Equal(t, 0, st.orgInserts)
}

func TestImporter_SynthesizedContactUsesFallbackDomain(t *testing.T) {
	st := newFakeStore()

	summary := New(st, "pdmedical.com.au").Run(context.Background(), []model.Product{
		{
			ProductCode:          "PDM-011",
			KeyContactsReference: strptr("Contact: Jane Doe"),
		},
	})

	assert.Equal(t, 1, summary.ContactsCreated)
	assert.Contains(t, st.contacts, "jane.doe@pdmedical.com.au")
	assert.Contains(t, st.orgs, "pdmedical.com.au")
}

func TestDerivedOrgName(t *testing.T) {
	assert.Equal(t, "Acme Organization", derivedOrgName("acme.com"))
	assert.Equal(t, "Pdmedical Organization", derivedOrgName("pdmedical.com.au"))
}

func TestSplitName(t *testing.T) {
	first, last := splitName(strptr("Jane M. Doe"))
	require.NotNil(t, first)
	require.NotNil(t, last)
	assert.Equal(t, "Jane", *first)
	assert.Equal(t, "Doe", *last)

	first, last = splitName(strptr("Cher"))
	require.NotNil(t, first)
	assert.Equal(t, "Cher", *first)
	assert.Nil(t, last)

	first, last = splitName(nil)
	assert.Nil(t, first)
	assert.Nil(t, last)
}
