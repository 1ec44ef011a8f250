package importer

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pdmedical/crm-import/internal/model"
	"github.com/pdmedical/crm-import/internal/parse"
	"github.com/pdmedical/crm-import/internal/store"
)

// Fixed attributes for interest links created from the contact
// reference column.
const (
	interestLevel         = "high"
	interestStatus        = "prospecting"
	interestSource        = "spreadsheet_import"
	leadScoreContribution = 10
)

var titleCaser = cases.Title(language.English)

// Importer runs the upsert pass against the backend. The caches are
// owned by the instance, so independent runs stay isolated.
type Importer struct {
	store          store.Store
	fallbackDomain string
	log            *zap.Logger

	orgCache     map[string]string // lowercase domain -> organization id
	contactCache map[string]string // lowercase email -> contact id
	productCache map[string]string // product code -> product id
}

// New creates an Importer with empty caches.
func New(st store.Store, fallbackDomain string) *Importer {
	return &Importer{
		store:          st,
		fallbackDomain: fallbackDomain,
		log:            zap.L().With(zap.String("component", "importer")),
		orgCache:       map[string]string{},
		contactCache:   map[string]string{},
		productCache:   map[string]string{},
	}
}

// Run upserts every merged product in input order. Per-record failures
// are captured in the summary; they never abort the batch.
func (im *Importer) Run(ctx context.Context, products []model.Product) *model.ImportSummary {
	summary := &model.ImportSummary{}
	for i, p := range products {
		im.importProduct(ctx, i+1, len(products), p, summary)
	}
	return summary
}

func (im *Importer) importProduct(ctx context.Context, idx, total int, p model.Product, sum *model.ImportSummary) {
	log := im.log.With(
		zap.String("product_code", p.ProductCode),
		zap.String("progress", fmt.Sprintf("%d/%d", idx, total)),
	)

	productID, err := im.store.GetProductIDByCode(ctx, p.ProductCode)
	if err != nil {
		msg := fmt.Sprintf("error importing %s: %v", p.ProductCode, err)
		sum.AddFailed(p.ProductCode, msg)
		log.Error("product lookup failed", zap.Error(err))
		return
	}

	if productID != "" {
		// Existing products are never patched.
		sum.AddSkipped(p.ProductCode)
		log.Info("skipped, already exists")
	} else {
		categoryID := im.categoryID(ctx, p.CategoryName)

		productID, err = im.store.InsertProduct(ctx, p, categoryID)
		if err != nil {
			msg := fmt.Sprintf("failed to import %s: %v", p.ProductCode, err)
			sum.AddFailed(p.ProductCode, msg)
			log.Error("product insert failed", zap.Error(err))
			return
		}
		sum.AddImported(p.ProductCode)
		log.Info("imported", zap.Stringp("product_name", p.ProductName))
	}

	im.productCache[p.ProductCode] = productID

	if p.KeyContactsReference == nil {
		return
	}
	for _, cand := range parse.Contacts(*p.KeyContactsReference, im.fallbackDomain) {
		im.importContact(ctx, cand, productID, sum)
	}
}

// categoryID resolves or creates the category. Failures degrade to an
// uncategorized product rather than failing the record.
func (im *Importer) categoryID(ctx context.Context, name *string) *string {
	if name == nil {
		return nil
	}

	id, err := im.store.GetCategoryIDByName(ctx, *name)
	if err != nil {
		im.log.Warn("category lookup failed", zap.String("category", *name), zap.Error(err))
		return nil
	}
	if id == "" {
		id, err = im.store.InsertCategory(ctx, *name, *name+" products")
		if err != nil {
			im.log.Warn("category create failed", zap.String("category", *name), zap.Error(err))
			return nil
		}
		im.log.Info("created category", zap.String("category", *name))
	}
	return &id
}

// importContact resolves one contact candidate and links it to the
// product. A bad contact never aborts the product or the batch.
func (im *Importer) importContact(ctx context.Context, cand model.ContactCandidate, productID string, sum *model.ImportSummary) {
	domain := parse.Domain(cand.Email, im.fallbackDomain)

	orgID := im.organizationID(ctx, domain, cand.Name)
	if orgID == "" {
		return
	}

	contactID, created := im.contactID(ctx, cand, orgID)
	if contactID == "" {
		return
	}
	if created {
		sum.ContactsCreated++
	}

	exists, err := im.store.InterestExists(ctx, contactID, productID)
	if err != nil {
		im.log.Warn("interest lookup failed", zap.String("email", cand.Email), zap.Error(err))
		return
	}
	if exists {
		return
	}

	err = im.store.InsertInterest(ctx, store.Interest{
		ContactID:             contactID,
		OrganizationID:        orgID,
		ProductID:             productID,
		InterestLevel:         interestLevel,
		Status:                interestStatus,
		Source:                interestSource,
		LeadScoreContribution: leadScoreContribution,
	})
	if err != nil {
		// A concurrent or prior insert of the same pair is fine.
		if store.IsDuplicate(err) {
			return
		}
		im.log.Warn("interest create failed", zap.String("email", cand.Email), zap.Error(err))
		return
	}
	sum.InterestsCreated++
}

// organizationID resolves or creates an organization for a domain,
// caching the result for the run. Returns "" on failure.
func (im *Importer) organizationID(ctx context.Context, domain string, contactName *string) string {
	key := strings.ToLower(domain)
	if id, ok := im.orgCache[key]; ok {
		return id
	}

	id, err := im.store.GetOrganizationIDByDomain(ctx, domain)
	if err != nil {
		im.log.Warn("organization lookup failed", zap.String("domain", domain), zap.Error(err))
		return ""
	}

	if id == "" && contactName != nil {
		id, err = im.store.FindOrganizationIDByName(ctx, *contactName)
		if err != nil {
			im.log.Warn("organization name lookup failed", zap.String("domain", domain), zap.Error(err))
			return ""
		}
	}

	if id == "" {
		name := derivedOrgName(domain)
		if contactName != nil {
			name = *contactName
		}
		id, err = im.store.InsertOrganization(ctx, name, domain)
		if err != nil {
			im.log.Warn("organization create failed", zap.String("domain", domain), zap.Error(err))
			return ""
		}
		im.log.Info("created organization", zap.String("name", name), zap.String("domain", domain))
	}

	im.orgCache[key] = id
	return id
}

// derivedOrgName builds a display name from the first domain label,
// e.g. "pdmedical.com.au" -> "Pdmedical Organization".
func derivedOrgName(domain string) string {
	label, _, _ := strings.Cut(domain, ".")
	return titleCaser.String(label) + " Organization"
}

// contactID resolves or creates a contact by lowercase email, caching
// the result. The second return reports whether a row was created.
func (im *Importer) contactID(ctx context.Context, cand model.ContactCandidate, orgID string) (string, bool) {
	email := strings.ToLower(strings.TrimSpace(cand.Email))
	if id, ok := im.contactCache[email]; ok {
		return id, false
	}

	id, err := im.store.GetContactIDByEmail(ctx, email)
	if err != nil {
		im.log.Warn("contact lookup failed", zap.String("email", email), zap.Error(err))
		return "", false
	}
	if id != "" {
		im.contactCache[email] = id
		return id, false
	}

	first, last := splitName(cand.Name)
	id, err = im.store.InsertContact(ctx, store.NewContact{
		Email:          email,
		FirstName:      first,
		LastName:       last,
		OrganizationID: orgID,
	})
	if err != nil {
		im.log.Warn("contact create failed", zap.String("email", email), zap.Error(err))
		return "", false
	}

	im.contactCache[email] = id
	im.log.Info("created contact", zap.String("email", email))
	return id, true
}

// splitName derives first/last name from the candidate name's first and
// last whitespace-separated tokens.
func splitName(name *string) (first, last *string) {
	if name == nil {
		return nil, nil
	}
	parts := strings.Fields(*name)
	if len(parts) > 0 {
		first = &parts[0]
	}
	if len(parts) > 1 {
		last = &parts[len(parts)-1]
	}
	return first, last
}
