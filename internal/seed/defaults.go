package seed

import (
	"time"

	"github.com/google/uuid"

	"github.com/orgprofile/cms-api/internal/core/domain"
)

func sampleArticles(now time.Time, adminID, editorID string) []*domain.Article {
	yesterday := now.Add(-24 * time.Hour)
	return []*domain.Article{
		{
			Title:       "Selamat Datang di Website Organisasi Kami",
			Slug:        "selamat-datang",
			Content:     "<p>Selamat datang di website resmi organisasi kami. Kami berkomitmen untuk memberikan pelayanan terbaik kepada masyarakat.</p><p>Dalam website ini, Anda dapat menemukan berbagai informasi tentang kegiatan dan program kami.</p>",
			Excerpt:     ptr("Selamat datang di website resmi organisasi kami. Temukan informasi tentang kegiatan dan program kami."),
			Status:      domain.ArticlePublished,
			Visibility:  domain.VisibilityPublic,
			PublishedAt: &now,
			AuthorID:    adminID,
		},
		{
			Title:       "Program Kerja Tahun 2026",
			Slug:        "program-kerja-2026",
			Content:     "<p>Tahun 2026 menjadi tahun yang penuh tantangan dan peluang. Organisasi kami telah menyiapkan berbagai program kerja untuk melayani masyarakat dengan lebih baik.</p><h3>Program Unggulan</h3><ul><li>Peningkatan kualitas pelayanan</li><li>Pengembangan sumber daya manusia</li><li>Modernisasi infrastruktur</li></ul>",
			Excerpt:     ptr("Tahun 2026 menjadi tahun yang penuh tantangan dan peluang. Simak program kerja unggulan kami."),
			Status:      domain.ArticlePublished,
			Visibility:  domain.VisibilityPublic,
			PublishedAt: &yesterday,
			AuthorID:    editorID,
		},
		{
			Title:      "Pengumuman Penting",
			Slug:       "pengumuman-penting",
			Content:    "<p>Dengan ini kami sampaikan pengumuman penting terkait kegiatan organisasi. Mohon perhatian seluruh anggota dan masyarakat.</p>",
			Excerpt:    ptr("Pengumuman penting terkait kegiatan organisasi. Mohon perhatian seluruh anggota dan masyarakat."),
			Status:     domain.ArticleDraft,
			Visibility: domain.VisibilityPublic,
			AuthorID:   adminID,
		},
	}
}

// withIDs stamps ids and timestamps on fresh sample articles.
func withIDs(articles []*domain.Article, now time.Time) []*domain.Article {
	for _, a := range articles {
		a.ID = uuid.NewString()
		a.CreatedAt = now
		a.UpdatedAt = now
	}
	return articles
}

type settingDefault struct {
	key, value, description string
}

var defaultSettings = []settingDefault{
	{"site_name", "Web Profil Organisasi", "Nama website"},
	{"site_logo", "https://upload.wikimedia.org/wikipedia/commons/thumb/2/22/Logo_Muhammadiyah.svg/1200px-Logo_Muhammadiyah.svg.png", "URL logo website"},
	{"site_description", "Website resmi organisasi kami", "Deskripsi website"},
	{"contact_email", "contact@organisasi.com", "Email kontak"},
	{"contact_phone", "", "Nomor telepon"},
	{"contact_address", "", "Alamat kantor"},
	{"social_facebook", "", "URL Facebook"},
	{"social_instagram", "", "URL Instagram"},
	{"social_youtube", "", "URL YouTube"},
	{"contact_whatsapp", "", "Nomor WhatsApp"},
	{"contact_maps_url", "", "URL embed Google Maps"},
	{"office_hours_weekday", "08.00 - 16.00", "Jam operasional Senin-Jumat"},
	{"office_hours_saturday", "08.00 - 12.00", "Jam operasional Sabtu"},
	{"org_vision", "Terwujudnya masyarakat Islam yang sebenar-benarnya yang diridhai Allah SWT.", "Visi organisasi"},
	{"org_mission_1", "Menegakkan keyakinan tauhid yang murni sesuai dengan ajaran Allah SWT yang dibawa oleh para Rasul.", "Misi organisasi ke-1"},
	{"org_mission_2", "Menyebarluaskan ajaran Islam yang bersumber pada Al-Qur'an dan As-Sunnah.", "Misi organisasi ke-2"},
	{"org_mission_3", "Mewujudkan amal usaha dan amal shalih dalam kehidupan perseorangan, keluarga, dan masyarakat.", "Misi organisasi ke-3"},
	{"history_founding", "Muhammadiyah didirikan di Kampung Kauman Yogyakarta pada tanggal 8 Dzulhijjah 1330 H bertepatan dengan tanggal 18 November 1912 M oleh K.H. Ahmad Dahlan.\n\nDi wilayah ini, pergerakan Muhammadiyah dimulai sejak awal abad ke-20 yang dipelopori oleh beberapa tokoh masyarakat setempat. Dengan semangat pembaharuan dan dakwah Islam, organisasi ini terus tumbuh dan memberikan kontribusi nyata bagi umat.", "Narasi sejarah awal berdiri"},
	{"history_development", "Seiring berjalannya waktu, berbagai amal usaha mulai didirikan. Mulai dari lembaga pendidikan, kesehatan, hingga sosial yang kini menjadi pusat kegiatan masyarakat.\n\nPeriode kepemimpinan berganti, namun semangat untuk berkhidmat kepada umat tidak pernah pudar. Setiap periode kepengurusan membawa warna dan kemajuan tersendiri bagi perkembangan organisasi.", "Narasi masa pengembangan"},
	{"history_present", "Saat ini, Muhammadiyah di wilayah terus beradaptasi dengan tantangan zaman. Digitalisasi dakwah, pemberdayaan ekonomi umat, dan peningkatan kualitas pendidikan menjadi fokus utama pergerakan.", "Narasi masa kini"},
	{"hero_image_url", "/hero-cover.png", "URL gambar hero halaman utama (Cloudinary atau path lokal)"},
	{"hero_subtitle", "Bersama membangun masyarakat Islam yang sebenar-benarnya, melalui dakwah, pendidikan, dan amal sosial.", "Subtitle hero halaman utama"},
}

// DefaultSettings returns the site settings every installation starts with.
// All of them are public.
func DefaultSettings() []*domain.Setting {
	out := make([]*domain.Setting, 0, len(defaultSettings))
	for _, d := range defaultSettings {
		out = append(out, &domain.Setting{
			Key:         d.key,
			Value:       d.value,
			Description: ptr(d.description),
			IsPublic:    true,
		})
	}
	return out
}

func ptr(s string) *string { return &s }
