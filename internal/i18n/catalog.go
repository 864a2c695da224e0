// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys.
const (
	MsgRequired      = "field.required"
	MsgEmail         = "field.email"
	MsgTooLong       = "field.too_long"
	MsgTooShort      = "field.too_short"
	MsgInvalid       = "field.invalid"
	MsgFormError     = "contact.form_error"
	MsgSent          = "contact.sent"
	MsgRateLimited   = "contact.rate_limited"
	MsgForbidden     = "request.forbidden"
	MsgServerError   = "request.server_error"
	MsgNotFound      = "page.not_found"
	MsgMaintenance   = "page.maintenance"
	MsgProjects      = "nav.projects"
	MsgAbout         = "nav.about"
	MsgSkills        = "nav.skills"
	MsgContact       = "nav.contact"
	MsgSimilar       = "project.similar"
	MsgPrevious      = "project.previous"
	MsgNext          = "project.next"
	MsgNoResults     = "projects.none"
	MsgResultCount   = "projects.count"
	MsgSearch        = "projects.search"
	MsgAllCategories = "projects.all_categories"
	MsgHome          = "nav.home"
	MsgFeatured      = "home.featured"
	MsgViewAll       = "home.view_all"
	MsgSortOrder     = "sort.order"
	MsgSortRecent    = "sort.recent"
	MsgSortTitle     = "sort.title"
	MsgTechnologies  = "projects.technologies"
	MsgCategories    = "projects.categories"
	MsgClearFilters  = "projects.clear"
	MsgFeatures      = "project.features"
	MsgChallenges    = "project.challenges"
	MsgLearnings     = "project.learnings"
	MsgGallery       = "project.gallery"
	MsgSourceCode    = "project.source"
	MsgDemo          = "project.demo"
	MsgDocs          = "project.docs"
	MsgCompleted     = "project.completed"
	MsgStatProjects  = "about.projects"
	MsgStatTechs     = "about.technologies"
	MsgStatYears     = "about.years"
	MsgFieldName     = "form.name"
	MsgFieldEmail    = "form.email"
	MsgFieldPhone    = "form.phone"
	MsgFieldSubject  = "form.subject"
	MsgFieldMessage  = "form.message"
	MsgSend          = "form.send"
	MsgPrevPage      = "pagination.prev"
	MsgNextPage      = "pagination.next"
	MsgBackHome      = "page.back_home"
)

var catalog = map[language.Tag]map[string]string{
	language.French: {
		MsgRequired:      "Ce champ est obligatoire.",
		MsgEmail:         "Saisissez une adresse e-mail valide.",
		MsgTooLong:       "Ce champ ne doit pas dépasser %d caractères.",
		MsgTooShort:      "Ce champ doit contenir au moins %d caractères.",
		MsgInvalid:       "Valeur invalide.",
		MsgFormError:     "Une erreur est survenue. Veuillez vérifier les champs du formulaire.",
		MsgSent:          "Message envoyé ! Je vous répondrai dès que possible.",
		MsgRateLimited:   "Trop de requêtes. Veuillez réessayer plus tard.",
		MsgForbidden:     "Requête refusée.",
		MsgServerError:   "Erreur interne du serveur.",
		MsgNotFound:      "Page introuvable.",
		MsgMaintenance:   "Le site est en maintenance. Revenez bientôt.",
		MsgProjects:      "Projets",
		MsgAbout:         "À propos",
		MsgSkills:        "Compétences",
		MsgContact:       "Contact",
		MsgSimilar:       "Projets similaires",
		MsgPrevious:      "Projet précédent",
		MsgNext:          "Projet suivant",
		MsgNoResults:     "Aucun projet ne correspond à ces critères.",
		MsgResultCount:   "%d projet(s)",
		MsgSearch:        "Rechercher",
		MsgAllCategories: "Toutes les catégories",
		MsgHome:          "Accueil",
		MsgFeatured:      "Projets à la une",
		MsgViewAll:       "Voir tous les projets",
		MsgSortOrder:     "Ordre par défaut",
		MsgSortRecent:    "Plus récents",
		MsgSortTitle:     "Titre",
		MsgTechnologies:  "Technologies",
		MsgCategories:    "Catégories",
		MsgClearFilters:  "Réinitialiser les filtres",
		MsgFeatures:      "Fonctionnalités",
		MsgChallenges:    "Défis",
		MsgLearnings:     "Apprentissages",
		MsgGallery:       "Galerie",
		MsgSourceCode:    "Code source",
		MsgDemo:          "Démo",
		MsgDocs:          "Documentation",
		MsgCompleted:     "Terminé en %s",
		MsgStatProjects:  "%d projets publiés",
		MsgStatTechs:     "%d technologies maîtrisées",
		MsgStatYears:     "%d ans d'expérience",
		MsgFieldName:     "Nom",
		MsgFieldEmail:    "E-mail",
		MsgFieldPhone:    "Téléphone (facultatif)",
		MsgFieldSubject:  "Sujet",
		MsgFieldMessage:  "Message",
		MsgSend:          "Envoyer",
		MsgPrevPage:      "Précédent",
		MsgNextPage:      "Suivant",
		MsgBackHome:      "Retour à l'accueil",
	},
	language.English: {
		MsgRequired:      "This field is required.",
		MsgEmail:         "Enter a valid email address.",
		MsgTooLong:       "This field must be at most %d characters.",
		MsgTooShort:      "This field must be at least %d characters.",
		MsgInvalid:       "Invalid value.",
		MsgFormError:     "An error occurred. Please check the form fields.",
		MsgSent:          "Message sent successfully! I will reply as soon as possible.",
		MsgRateLimited:   "Too many requests. Please try again later.",
		MsgForbidden:     "Request refused.",
		MsgServerError:   "Internal server error.",
		MsgNotFound:      "Page not found.",
		MsgMaintenance:   "The site is under maintenance. Please come back soon.",
		MsgProjects:      "Projects",
		MsgAbout:         "About",
		MsgSkills:        "Skills",
		MsgContact:       "Contact",
		MsgSimilar:       "Similar projects",
		MsgPrevious:      "Previous project",
		MsgNext:          "Next project",
		MsgNoResults:     "No project matches these filters.",
		MsgResultCount:   "%d project(s)",
		MsgSearch:        "Search",
		MsgAllCategories: "All categories",
		MsgHome:          "Home",
		MsgFeatured:      "Featured projects",
		MsgViewAll:       "See all projects",
		MsgSortOrder:     "Default order",
		MsgSortRecent:    "Most recent",
		MsgSortTitle:     "Title",
		MsgTechnologies:  "Technologies",
		MsgCategories:    "Categories",
		MsgClearFilters:  "Clear filters",
		MsgFeatures:      "Features",
		MsgChallenges:    "Challenges",
		MsgLearnings:     "Learnings",
		MsgGallery:       "Gallery",
		MsgSourceCode:    "Source code",
		MsgDemo:          "Live demo",
		MsgDocs:          "Documentation",
		MsgCompleted:     "Completed in %s",
		MsgStatProjects:  "%d published projects",
		MsgStatTechs:     "%d technologies",
		MsgStatYears:     "%d years of experience",
		MsgFieldName:     "Name",
		MsgFieldEmail:    "Email",
		MsgFieldPhone:    "Phone (optional)",
		MsgFieldSubject:  "Subject",
		MsgFieldMessage:  "Message",
		MsgSend:          "Send",
		MsgPrevPage:      "Previous",
		MsgNextPage:      "Next",
		MsgBackHome:      "Back to home",
	},
}

func init() {
	for tag, msgs := range catalog {
		for key, msg := range msgs {
			if err := message.SetString(tag, key, msg); err != nil {
				panic("i18n: register " + key + ": " + err.Error())
			}
		}
	}
}
