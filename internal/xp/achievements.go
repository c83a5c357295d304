package xp

import "fmt"

// Achievement is a catalog entry. The catalog is fixed at compile time and
// never mutated; per-user unlock state lives in the database.
type Achievement struct {
	ID          string
	Name        string
	Description string
	Icon        string
	XPReward    int
}

var achievements = []Achievement{
	{ID: "first_like", Name: "Primer Like", Description: "Da tu primer me gusta", Icon: "❤️", XPReward: 50},
	{ID: "first_post", Name: "Primera Publicación", Description: "Crea tu primera publicación", Icon: "📝", XPReward: 100},
	{ID: "first_comment", Name: "Primer Comentario", Description: "Comenta por primera vez", Icon: "💬", XPReward: 75},
	{ID: "first_match", Name: "Primer Match", Description: "Haz tu primer match", Icon: "💫", XPReward: 150},
	{ID: "first_chat", Name: "Primera Conversación", Description: "Inicia tu primer chat", Icon: "💌", XPReward: 100},
	{ID: "join_challenge", Name: "Retador", Description: "Únete a tu primer reto", Icon: "🏆", XPReward: 200},
	{ID: "attend_event", Name: "Participante Activo", Description: "Inscríbete a tu primer evento", Icon: "🎯", XPReward: 150},
	{ID: "level_5", Name: "Fitness Rookie", Description: "Alcanza el nivel 5", Icon: "🥉", XPReward: 300},
	{ID: "level_10", Name: "Fitness Enthusiast", Description: "Alcanza el nivel 10", Icon: "🥈", XPReward: 500},
	{ID: "level_15", Name: "Fitness Master", Description: "Alcanza el nivel 15", Icon: "🥇", XPReward: 1000},
	{ID: "social_butterfly", Name: "Mariposa Social", Description: "Haz 10 matches", Icon: "🦋", XPReward: 400},
	{ID: "content_creator", Name: "Creador de Contenido", Description: "Crea 10 publicaciones", Icon: "🎨", XPReward: 600},
}

var achievementIndex = func() map[string]Achievement {
	m := make(map[string]Achievement, len(achievements))
	for _, a := range achievements {
		m[a.ID] = a
	}
	return m
}()

// Achievements returns the catalog in stable order.
func Achievements() []Achievement {
	out := make([]Achievement, len(achievements))
	copy(out, achievements)
	return out
}

func AchievementByID(id string) (Achievement, bool) {
	a, ok := achievementIndex[id]
	return a, ok
}

// LevelAchievementID returns the catalog id keyed to a level. Not every
// level has one; callers look the result up in the catalog.
func LevelAchievementID(level int) string {
	return fmt.Sprintf("level_%d", level)
}
