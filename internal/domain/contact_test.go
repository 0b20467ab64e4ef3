package domain_test

import (
	"net/url"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonielmendes/AlugaLarCorrente/internal/domain"
)

func TestContactLink_PrependsCountryCode(t *testing.T) {
	link := domain.ContactLink("(64) 99999-8888", "Casa X")

	assert.Equal(t,
		"https://wa.me/5564999998888?text=Ol%C3%A1%21%20Vi%20o%20im%C3%B3vel%20%2ACasa%20X%2A%20anunciado%20no%20CorrenteLar%20e%20tenho%20interesse.%20Poderia%20me%20dar%20mais%20informa%C3%A7%C3%B5es%3F",
		link)
}

func TestContactLink_KeepsExistingPrefix(t *testing.T) {
	link := domain.ContactLink("+55 64 99999-8888", "Kitnet")
	assert.Contains(t, link, "https://wa.me/5564999998888?text=")

	// 恰好以 55 开头的号码不会再补国家码。
	link = domain.ContactLink("5512345", "Kitnet")
	assert.Contains(t, link, "https://wa.me/5512345?text=")
}

func TestContactLink_Shape(t *testing.T) {
	shape := regexp.MustCompile(`^https://wa\.me/55[0-9]*\?text=[A-Za-z0-9_.\-~/%]+$`)
	phones := []string{"", "64 3333-4444", "(11) 9 8765-4321", "abc", "55", "+1 (555) 010-9999"}
	titles := []string{"Casa X", "Apê 2/4 & garagem", "100% mobiliado!", "Quarto #3 + café"}

	for _, p := range phones {
		for _, title := range titles {
			link := domain.ContactLink(p, title)
			require.Regexp(t, shape, link)

			u, err := url.Parse(link)
			require.NoError(t, err)
			msg, err := url.QueryUnescape(u.RawQuery[len("text="):])
			require.NoError(t, err)
			assert.Contains(t, msg, "*"+title+"*")
		}
	}
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "64999998888", domain.NormalizePhone("(64) 9 9999-8888"))
	assert.Equal(t, "", domain.NormalizePhone("sem telefone"))
}

func TestListing_WhatsAppLinkAndOwnership(t *testing.T) {
	l := &domain.Listing{Title: "Casa X", ContactPhone: "64999998888", OwnerID: 3}
	assert.Equal(t, domain.ContactLink("64999998888", "Casa X"), l.WhatsAppLink())
	assert.True(t, l.IsOwnedBy(3))
	assert.False(t, l.IsOwnedBy(4))

	var missing *domain.Listing
	assert.False(t, missing.IsOwnedBy(3))
}

func TestListing_MediaRefs(t *testing.T) {
	l := &domain.Listing{
		MainPhoto: "imoveis/a.jpg",
		Images:    []domain.ListingImage{{Image: "imoveis/galeria/b.jpg"}, {Image: ""}},
	}
	assert.Equal(t, []string{"imoveis/a.jpg", "imoveis/galeria/b.jpg"}, l.MediaRefs())
}
