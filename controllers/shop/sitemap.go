package shopControllers

import (
	"encoding/xml"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AndreaGalia/olio-galia-sub004/config"
	"github.com/AndreaGalia/olio-galia-sub004/models"
)

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

type sitemapSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// GET /sitemap.xml — built from the active product slugs.
func GetSitemap(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.Select("slug", "updated_at").Where("active = ?", true).Find(&products).Error; err != nil {
			c.String(http.StatusInternalServerError, "failed to build sitemap")
			return
		}

		set := sitemapSet{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}
		set.URLs = append(set.URLs,
			sitemapURL{Loc: cfg.FrontendURL + "/"},
			sitemapURL{Loc: cfg.FrontendURL + "/shop"},
			sitemapURL{Loc: cfg.FrontendURL + "/faq"},
		)
		for _, p := range products {
			set.URLs = append(set.URLs, sitemapURL{
				Loc:     cfg.FrontendURL + "/products/" + p.Slug,
				LastMod: p.UpdatedAt.Format(time.DateOnly),
			})
		}

		out, err := xml.MarshalIndent(set, "", "  ")
		if err != nil {
			c.String(http.StatusInternalServerError, "failed to build sitemap")
			return
		}
		c.Data(http.StatusOK, "application/xml", append([]byte(xml.Header), out...))
	}
}

// GET /robots.txt
func GetRobots(cfg *config.Config) gin.HandlerFunc {
	body := "User-agent: *\nDisallow: /api/\nSitemap: " + cfg.FrontendURL + "/sitemap.xml\n"
	return func(c *gin.Context) {
		c.String(http.StatusOK, body)
	}
}
